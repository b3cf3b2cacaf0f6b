// Package session persists the authenticated session between runs of the
// client, so a restart can resume without signing in again.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hifi-israel/sikacare/internal/client/models"
	"github.com/hifi-israel/sikacare/internal/client/repositories/metadata"
	"github.com/hifi-israel/sikacare/internal/cryptox"
	"github.com/hifi-israel/sikacare/internal/dbx"
)

const sessionKey = "session"

type Store interface {
	// Load returns (nil, nil) when nothing has been saved.
	Load(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}

// sealedSession is the stored form of a session when the store has a key.
type sealedSession struct {
	Nonce []byte `json:"nonce"`
	Data  []byte `json:"data"`
}

type SQLiteStore struct {
	db  *sql.DB
	key []byte
}

type StoreOption func(*SQLiteStore)

// WithKey seals the stored session with AES-GCM under key.
func WithKey(key []byte) StoreOption {
	return func(s *SQLiteStore) { s.key = key }
}

func NewSQLiteStore(db *sql.DB, opts ...StoreOption) *SQLiteStore {
	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns (nil, nil) when nothing is stored, and also when a sealed
// session cannot be opened with the current key, so the user signs in again.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Session, error) {
	var stored models.Session
	var sealed sealedSession
	var found bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		var err error
		if s.key != nil {
			found, err = repo.GetJSON(ctx, sessionKey, &sealed)
		} else {
			found, err = repo.GetJSON(ctx, sessionKey, &stored)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return nil, nil
	}
	if s.key != nil {
		if len(sealed.Nonce) == 0 {
			return nil, nil
		}
		if err := cryptox.Open(sealed.Data, sealed.Nonce, s.key, &stored); err != nil {
			return nil, nil
		}
	}
	return &stored, nil
}

func (s *SQLiteStore) Save(ctx context.Context, sess *models.Session) error {
	if sess == nil {
		return s.Clear(ctx)
	}

	var value any = sess
	if s.key != nil {
		data, nonce, err := cryptox.Seal(sess, s.key)
		if err != nil {
			return fmt.Errorf("seal session: %w", err)
		}
		value = sealedSession{Nonce: nonce, Data: data}
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).SetJSON(ctx, sessionKey, value)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, sessionKey)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps the session only for the lifetime of the process.
type MemoryStore struct {
	sess *models.Session
}

func (m *MemoryStore) Load(context.Context) (*models.Session, error) {
	if m.sess == nil {
		return nil, nil
	}
	cp := *m.sess
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, s *models.Session) error {
	if s == nil {
		m.sess = nil
		return nil
	}
	cp := *s
	m.sess = &cp
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.sess = nil
	return nil
}
