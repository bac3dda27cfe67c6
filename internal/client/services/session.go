package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/timemachine/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/timemachine/internal/dbx"
	"github.com/dmitrijs2005/timemachine/internal/logging"
)

// Keys of the persisted session in the metadata store.
const (
	KeyToken    = "TOKEN"
	KeyUsername = "USERNAME"
)

// Session owns the bearer token. It is read from the local store once at
// startup, written on login and removed on logout.
type Session struct {
	db  *sql.DB
	log logging.Logger

	mu       sync.RWMutex
	token    string
	username string
}

func NewSession(db *sql.DB, log logging.Logger) *Session {
	return &Session{db: db, log: log.With("component", "session")}
}

func (s *Session) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

// Load reads the persisted token. A read failure is logged and treated as
// no token.
func (s *Session) Load(ctx context.Context) (string, bool) {
	stored, err := s.repo(s.db).Lookup(ctx, KeyToken, KeyUsername)
	if err != nil {
		s.log.Warn(ctx, "failed to read session", "err", err)
		return "", false
	}
	token := string(stored[KeyToken])
	if token == "" {
		return "", false
	}

	s.mu.Lock()
	s.token = token
	s.username = string(stored[KeyUsername])
	s.mu.Unlock()

	return token, true
}

// Set replaces the stored session with token and the username it belongs
// to, and only then holds it in memory. If the write fails nothing is held.
func (s *Session) Set(ctx context.Context, username, token string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Put(ctx, map[string][]byte{
			KeyToken:    []byte(token),
			KeyUsername: []byte(username),
		})
	})
	if err != nil {
		s.log.Error(ctx, "failed to persist session", "err", err)
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.username = username
	s.mu.Unlock()

	return nil
}

// Clear forgets the token. Memory is cleared even when the store fails.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.mu.Unlock()

	if err := s.repo(s.db).Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to remove session", "err", err)
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Session) Current() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}
