package repomanager

import (
	"context"
	"database/sql"

	"github.com/hifi-israel/sikacare/internal/dbx"
	"github.com/hifi-israel/sikacare/internal/server/repositories/avatars"
	"github.com/hifi-israel/sikacare/internal/server/repositories/profiles"
	"github.com/hifi-israel/sikacare/internal/server/repositories/refreshtokens"
	"github.com/hifi-israel/sikacare/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a *sql.DB or a *sql.Tx,
// so services can run several of them in one transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Avatars(db dbx.DBTX) avatars.Repository
}
