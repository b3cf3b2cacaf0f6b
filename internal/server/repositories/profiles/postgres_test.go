package profiles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/hifi-israel/sikacare/internal/common"
	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	q := `(?s)INSERT\s+INTO\s+profiles\s+\(user_id\)\s+VALUES\s+\(\$1\)\s+ON\s+CONFLICT\s+\(user_id\)\s+DO\s+NOTHING`
	mock.ExpectExec(q).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("u2").WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Create(context.Background(), "u1"))
	err = repo.Create(context.Background(), "u2")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestGet(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	repo := NewPostgresRepository(db)

	q := `(?s)SELECT\s+user_id,.*to_char\(birthdate,\s*'YYYY-MM-DD'\).*FROM\s+profiles\s+WHERE\s+user_id\s*=\s*\$1`
	cols := []string{"user_id", "full_name", "phone", "gender", "birthdate", "avatar_id", "is_onboarding_seen", "updated_at"}
	updated := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q).WithArgs("u1").WillReturnRows(sqlmock.NewRows(cols).
		AddRow("u1", "Dana Levi", "51234567", "F", "1990-04-12", int64(3), true, updated))
	mock.ExpectQuery(q).WithArgs("u2").WillReturnRows(sqlmock.NewRows(cols).
		AddRow("u2", nil, nil, nil, nil, nil, false, updated))
	mock.ExpectQuery(q).WithArgs("u3").WillReturnError(sql.ErrNoRows)

	p, err := repo.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, p.FullName)
	assert.Equal(t, "Dana Levi", *p.FullName)
	assert.Equal(t, "1990-04-12", *p.Birthdate)
	assert.Equal(t, 3, *p.AvatarID)
	assert.True(t, p.IsOnboardingSeen)

	p, err = repo.Get(context.Background(), "u2")
	require.NoError(t, err)
	assert.Nil(t, p.FullName)
	assert.Nil(t, p.AvatarID)
	assert.False(t, p.IsOnboardingSeen)

	_, err = repo.Get(context.Background(), "u3")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_BuildsSetClause(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	name, phone, gender, birthdate, avatar, seen := "Dana", "51234567", "F", "1990-04-12", 2, true
	mock.ExpectExec("UPDATE profiles SET full_name = $2, phone = $3, gender = $4, birthdate = $5::date, avatar_id = $6, is_onboarding_seen = $7, updated_at = now() WHERE user_id = $1").
		WithArgs("u1", name, phone, gender, birthdate, avatar, seen).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), "u1", models.ProfileUpdate{
		FullName: &name, Phone: &phone, Gender: &gender, Birthdate: &birthdate, AvatarID: &avatar, IsOnboardingSeen: &seen,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_SingleField(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	seen := true
	mock.ExpectExec("UPDATE profiles SET is_onboarding_seen = $2, updated_at = now() WHERE user_id = $1").
		WithArgs("u1", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), "u1", models.ProfileUpdate{IsOnboardingSeen: &seen})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestUpdate_EmptyIsNoop(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	require.NoError(t, repo.Update(context.Background(), "u1", models.ProfileUpdate{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	phone := "51234567"
	mock.ExpectExec("UPDATE profiles SET phone = $2, updated_at = now() WHERE user_id = $1").
		WillReturnError(errors.New("db err"))

	err := repo.Update(context.Background(), "u1", models.ProfileUpdate{Phone: &phone})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error: db err")
}
