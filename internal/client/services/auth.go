// Package services contains the CLI's application services. This file holds
// the session service: register, login, logout and restoring a saved session
// from the local cache.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mindkeeper/internal/client/client"
	"github.com/dmitrijs2005/mindkeeper/internal/client/repositories/dashboards"
	"github.com/dmitrijs2005/mindkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mindkeeper/internal/dbx"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
)

// AuthService defines session operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and save the session locally.
//   - RestoreSession: reuse a session saved by an earlier Login.
//   - Logout: revoke the session on the server and wipe local data.
//   - UserName: the user of the current session, or "".
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) error
	Login(ctx context.Context, username string, password []byte) error
	RestoreSession(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	UserName() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger

	mu       sync.RWMutex
	userName string
}

// NewAuthService constructs an AuthService bound to the given API client and
// local database. Tokens refreshed by the client are written back to the
// saved session.
func NewAuthService(c client.Client, db *sql.DB, l logging.Logger) AuthService {
	a := &authService{client: c, db: db, log: l.With("module", "auth")}
	c.OnTokensRefreshed(a.saveTokens)
	return a
}

func (a *authService) getMetadataRepo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (a *authService) getDashboardRepo(db dbx.DBTX) dashboards.Repository {
	return dashboards.NewSQLiteRepository(db)
}

func (a *authService) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *authService) UserName() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName
}

// Register creates a new account on the server. It does not log in.
func (a *authService) Register(ctx context.Context, username string, password []byte) error {
	return a.client.Register(ctx, username, password)
}

// Login authenticates against the server and saves username and token pair.
func (a *authService) Login(ctx context.Context, username string, password []byte) error {
	if err := a.client.Login(ctx, username, password); err != nil {
		return fmt.Errorf("login error: %w", err)
	}

	access, refresh := a.client.Tokens()
	err := a.getMetadataRepo(a.db).SetMany(ctx, map[metadata.Key]string{
		metadata.KeyUserName:     username,
		metadata.KeyAccessToken:  access,
		metadata.KeyRefreshToken: refresh,
	})
	if err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}

	a.setUserName(username)
	return nil
}

// RestoreSession loads a saved session into the client. It reports false
// when no complete session is stored.
func (a *authService) RestoreSession(ctx context.Context) (bool, error) {
	repo := a.getMetadataRepo(a.db)

	values := make(map[metadata.Key]string, 3)
	for _, k := range []metadata.Key{metadata.KeyUserName, metadata.KeyAccessToken, metadata.KeyRefreshToken} {
		v, ok, err := repo.Get(ctx, k)
		if err != nil {
			return false, err
		}
		if !ok || v == "" {
			return false, nil
		}
		values[k] = v
	}

	a.client.SetTokens(values[metadata.KeyAccessToken], values[metadata.KeyRefreshToken])
	a.setUserName(values[metadata.KeyUserName])
	return true, nil
}

// saveTokens persists a refreshed pair. Failures are logged only: the pair in
// memory is still valid for this run.
func (a *authService) saveTokens(access, refresh string) {
	ctx := context.Background()
	err := a.getMetadataRepo(a.db).SetMany(ctx, map[metadata.Key]string{
		metadata.KeyAccessToken:  access,
		metadata.KeyRefreshToken: refresh,
	})
	if err != nil {
		a.log.Warn(ctx, "saving refreshed tokens failed", "error", err)
	}
}

// Logout revokes the refresh token on the server, then wipes the saved
// session and the cached dashboard in one transaction. An unreachable server
// does not block the local wipe.
func (a *authService) Logout(ctx context.Context) error {
	userName := a.UserName()

	if err := a.client.Logout(ctx); err != nil {
		if !errors.Is(err, client.ErrUnavailable) && !errors.Is(err, client.ErrUnauthorized) {
			return fmt.Errorf("logout error: %w", err)
		}
		a.log.Warn(ctx, "server logout skipped", "error", err)
	}

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := a.getMetadataRepo(tx).Clear(ctx); err != nil {
			return err
		}
		if userName == "" {
			return nil
		}
		return a.getDashboardRepo(tx).Delete(ctx, userName)
	})
	if err != nil {
		return fmt.Errorf("local data wipe error: %w", err)
	}

	a.setUserName("")
	return nil
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
