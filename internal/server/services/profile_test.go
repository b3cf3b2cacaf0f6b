package services

import (
	"context"
	"testing"
	"time"

	"github.com/hifi-israel/sikacare/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestProfileSelect_OwnRowOnly(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.p.rows["u1"] = &models.Profile{UserID: "u1", FullName: ptr("Dana Levi")}
	rm.p.rows["u2"] = &models.Profile{UserID: "u2"}
	s := NewProfileService(db, rm)
	ctx := context.Background()

	rows, err := s.Select(ctx, "u1", "u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dana Levi", *rows[0].FullName)

	rows, err = s.Select(ctx, "u1", "u2")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)

	rows, err = s.Select(ctx, "u3", "u3")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestProfileUpdate(t *testing.T) {
	stubNow(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.p.rows["u1"] = &models.Profile{UserID: "u1"}
	s := NewProfileService(db, rm)
	ctx := context.Background()

	upd := models.ProfileUpdate{
		FullName:         ptr("Dana Levi"),
		Phone:            ptr("50123456"),
		Gender:           ptr("F"),
		Birthdate:        ptr("1990-04-12"),
		AvatarID:         ptr(2),
		IsOnboardingSeen: ptr(true),
	}
	require.NoError(t, s.Update(ctx, "u1", "u1", upd))
	require.Len(t, rm.p.updates, 1)
	assert.Equal(t, upd, rm.p.updates[0])

	require.NoError(t, s.Update(ctx, "u1", "u2", upd), "foreign rows are silently skipped")
	require.NoError(t, s.Update(ctx, "u1", "u1", models.ProfileUpdate{}))
	assert.Len(t, rm.p.updates, 1)

	require.NoError(t, s.Update(ctx, "u9", "u9", upd), "missing row is not an error")
}

func TestProfileUpdate_Validation(t *testing.T) {
	stubNow(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	db, _ := newSQLMockDB(t)
	rm := newFakeRepoManager()
	rm.p.rows["u1"] = &models.Profile{UserID: "u1"}
	s := NewProfileService(db, rm)

	bad := []models.ProfileUpdate{
		{Gender: ptr("X")},
		{Phone: ptr("123")},
		{Birthdate: ptr("12/04/1990")},
		{Birthdate: ptr("2030-01-01")},
		{AvatarID: ptr(0)},
	}
	for _, upd := range bad {
		assert.ErrorIs(t, s.Update(context.Background(), "u1", "u1", upd), ErrInvalidProfile)
	}
	assert.Empty(t, rm.p.updates)

	assert.NoError(t, s.Update(context.Background(), "u1", "u1", models.ProfileUpdate{Phone: ptr("")}))
}
