package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/notelog/backend/internal/client"
	"github.com/notelog/backend/internal/config"
	"github.com/notelog/backend/internal/localstore"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in (run `notelog login`)")

// App - 명령 사이에서 공유되는 CLI 상태
type App struct {
	cfg     config.ClientConfig
	verbose bool

	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer

	log     *slog.Logger
	store   *localstore.Store
	session *localstore.Session
	api     *client.Client
}

func newApp(cfg config.ClientConfig, in io.Reader, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		in:     bufio.NewReader(in),
		out:    out,
		errOut: errOut,
	}
}

// open - 로컬 저장소와 세션을 열고 API 클라이언트를 만든다
func (a *App) open(ctx context.Context) error {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	store, err := localstore.Open(ctx, a.cfg.DataPath)
	if err != nil {
		return err
	}
	session, err := store.LoadSession(ctx)
	if err != nil {
		_ = store.Close()
		return err
	}

	a.store = store
	a.session = session
	a.api = client.New(a.cfg.APIURL, session)
	a.log.Debug("client ready", slog.String("api", a.cfg.APIURL), slog.String("data", a.cfg.DataPath))
	return nil
}

func (a *App) close() error {
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *App) requireSession() error {
	if !a.session.LoggedIn() {
		return errNotLoggedIn
	}
	return nil
}

// handleAPIError - 서버가 토큰을 거절하면 저장된 세션을 지운다
func (a *App) handleAPIError(ctx context.Context, err error) error {
	if client.IsUnauthorized(err) {
		if clearErr := a.store.ClearSession(ctx, a.session); clearErr != nil {
			a.log.Error("failed to clear session", slog.Any("error", clearErr))
		}
		return fmt.Errorf("session rejected by server, logged out: %w", err)
	}
	return err
}

func newRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "notelog",
		Short:         "Terminal client for NoteLog notes, todos, contacts and custom notes",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.open(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.close()
		},
	}
	root.SetIn(app.in)
	root.SetOut(app.out)
	root.SetErr(app.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&app.cfg.APIURL, "api-url", app.cfg.APIURL, "NoteLog API base URL")
	flags.StringVar(&app.cfg.DataPath, "data", app.cfg.DataPath, "local state database path")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newRegisterCmd(app),
		newLoginCmd(app),
		newLogoutCmd(app),
		newMeCmd(app),
		newNotesCmd(app),
		newTodosCmd(app),
		newContactsCmd(app),
		newCustomNotesCmd(app),
		newRemindCmd(app),
	)
	return root
}
