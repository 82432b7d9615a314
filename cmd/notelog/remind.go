package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/notelog/backend/internal/client"
	"github.com/notelog/backend/internal/model"
	"github.com/notelog/backend/internal/reminder"
	"github.com/spf13/cobra"
)

type remindOptions struct {
	body       string
	webhookURL string
	quiet      bool
}

func newRemindCmd(app *App) *cobra.Command {
	var opts remindOptions
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Watch todos and notify when reminders are due (Ctrl-C to stop)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireSession(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runRemind(ctx, app, opts)
		},
	}
	cmd.Flags().StringVar(&opts.body, "body", "", "notification body template, e.g. \"Due: {{todo.title}}\"")
	cmd.Flags().StringVar(&opts.webhookURL, "webhook", "", "also POST reminders to this URL")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "do not print reminders to the terminal")
	return cmd
}

func buildNotifier(app *App, opts remindOptions) reminder.MultiNotifier {
	var notifiers reminder.MultiNotifier
	if !opts.quiet {
		notifiers = append(notifiers, reminder.NewWriterNotifier(app.out))
	}
	if opts.webhookURL != "" {
		notifiers = append(notifiers, reminder.NewWebhookNotifier(reminder.WebhookConfig{URL: opts.webhookURL}))
	}
	return notifiers
}

// runRemind - refresh 루프(네트워크)와 poller(로컬)를 ctx가 끝날 때까지 돌린다
func runRemind(ctx context.Context, app *App, opts remindOptions) error {
	notifier := buildNotifier(app, opts)
	if !notifier.Permitted() {
		app.log.Warn("no notification channel enabled; reminders will not fire")
	}

	fetch := func(ctx context.Context) ([]model.Todo, error) {
		return app.api.Todos().List(ctx)
	}

	board := reminder.NewBoard()
	if err := board.Refresh(ctx, fetch); err != nil {
		return app.handleAPIError(ctx, err)
	}
	fmt.Fprintf(app.out, "Watching %d todos for reminders\n", len(board.Snapshot()))

	var username string
	if user := app.session.User(); user != nil {
		username = user.Username
	}

	poller := reminder.NewPoller(board, notifier, app.store, app.log,
		reminder.WithInterval(app.cfg.ReminderInterval),
		reminder.WithWindow(app.cfg.ReminderWindow),
		reminder.WithBody(opts.body),
		reminder.WithUsername(username),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg         sync.WaitGroup
		refreshErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		// 토큰이 거절되면 세션을 지우고 전체를 멈춘다
		refreshErr = board.RunRefresh(ctx, app.cfg.RefreshInterval, fetch, app.log, client.IsUnauthorized)
		if refreshErr != nil {
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		if err := poller.Run(ctx); err != nil {
			app.log.Error("reminder poller stopped", slog.Any("error", err))
		}
	}()
	wg.Wait()

	if refreshErr != nil {
		return app.handleAPIError(context.Background(), refreshErr)
	}
	fmt.Fprintln(app.out, "Stopped")
	return nil
}
