// Package cli реализует консольный клиент API заметок.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"gonotes/internal/client/api"
	"gonotes/internal/client/session"
	"gonotes/internal/gateway/app/dto"
	"gonotes/pkg/logger"
)

// Переменные окружения клиента.
const (
	EnvServer    = "NOTES_SERVER"
	EnvSessionDB = "NOTES_SESSION_DB"
	EnvPassword  = "NOTES_PASSWORD"
)

const (
	defaultServer      = "http://localhost:5050"
	sessionDirName     = "gonotes"
	sessionFileName    = "session.db"
	flagServer         = "server"
	flagSessionDB      = "session-db"
	errCtxOpenSession  = "opening session"
	errCtxCloseSession = "closing session store"
)

// ErrNotLoggedIn возвращается командами, которым нужен вход.
var ErrNotLoggedIn = errors.New("not logged in, run login first")

// Options задает окружение клиента.
type Options struct {
	In         io.Reader
	Out        io.Writer
	HTTPClient *http.Client
}

// App хранит состояние одного запуска клиента.
type App struct {
	in         *bufio.Reader
	out        io.Writer
	httpClient *http.Client

	client  *api.Client
	store   *session.Store
	session *session.Session
}

// NewApp собирает приложение urfave/cli.
func NewApp(opts Options) *cli.App {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	a := &App{
		in:         bufio.NewReader(opts.In),
		out:        opts.Out,
		httpClient: opts.HTTPClient,
	}

	return &cli.App{
		Name:      "notes",
		Usage:     "personal notes client",
		Writer:    opts.Out,
		ErrWriter: opts.Out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagServer,
				Usage:   "API server base URL",
				Value:   defaultServer,
				EnvVars: []string{EnvServer},
			},
			&cli.StringFlag{
				Name:    flagSessionDB,
				Usage:   "path to the local session database",
				Value:   defaultSessionPath(),
				EnvVars: []string{EnvSessionDB},
			},
		},
		Before:   a.open,
		After:    a.close,
		Commands: append(a.authCommands(), a.notesCommand()),
	}
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return sessionFileName
	}
	return filepath.Join(dir, sessionDirName, sessionFileName)
}

func (a *App) open(c *cli.Context) error {
	path := c.String(flagSessionDB)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%s: %w", errCtxOpenSession, err)
		}
	}

	store, err := session.OpenStore(c.Context, path)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtxOpenSession, err)
	}

	a.store = store
	a.client = api.New(c.String(flagServer), api.WithHTTPClient(a.httpClient))
	a.session = session.New(store, a.client)
	return nil
}

func (a *App) close(c *cli.Context) error {
	if a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		logger.Log(c.Context).Warn(c.Context, errCtxCloseSession, zap.Error(err))
	}
	return nil
}

// requireUser восстанавливает сессию и требует, чтобы пользователь был авторизован.
func (a *App) requireUser(ctx context.Context) (*dto.UserResponse, error) {
	user, err := a.session.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	return user, nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
