package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/mindkeeper/internal/client/client"
	"github.com/dmitrijs2005/mindkeeper/internal/client/config"
	"github.com/dmitrijs2005/mindkeeper/internal/client/dashboard"
	"github.com/dmitrijs2005/mindkeeper/internal/client/services"
	"github.com/dmitrijs2005/mindkeeper/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	authService services.AuthService
	wellness    services.WellnessService
	view        *dashboard.View
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	mu   sync.RWMutex
	mode Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	l := logging.NewText(os.Stderr, slog.LevelWarn)

	db, err := client.InitDatabase(ctx, c.CachePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	apiClient, err := client.NewWellnessClientService(c.ServerEndpointAddr)
	if err != nil {
		db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, db, l)
	ws := services.NewWellnessService(apiClient, db, as.UserName, l)

	return &App{
		config:      c,
		db:          db,
		authService: as,
		wellness:    ws,
		view:        dashboard.NewView(),
		log:         l,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

// Run restores a saved session, starts the connectivity watcher and blocks
// in the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.authService.Close(ctx)
		_ = a.db.Close()
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to MindKeeper CLI (type 'help' for commands)")

	if ok, err := a.authService.RestoreSession(ctx); err != nil {
		a.log.Warn(ctx, "restoring session failed", "error", err)
	} else if ok {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.authService.UserName())
	}

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.authService.UserName() != ""
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.authService.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval and flips the
// mode accordingly until ctx is done.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	s := ""
	if u := a.authService.UserName(); u != "" {
		s = u + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
