package main

import (
	"fmt"

	"github.com/notelog/backend/internal/model"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var username, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if username, err = valueOrPrompt(app.in, app.out, username, "Username"); err != nil {
				return err
			}
			if email, err = valueOrPrompt(app.in, app.out, email, "Email"); err != nil {
				return err
			}
			password, err := promptPassword(app.out)
			if err != nil {
				return err
			}

			resp, err := app.api.Register(ctx, model.RegisterRequest{Username: username, Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := app.store.SaveSession(ctx, app.session, resp.Token, resp.User); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Registered and logged in as %s\n", resp.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&email, "email", "", "email")
	return cmd
}

func newLoginCmd(app *App) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if email, err = valueOrPrompt(app.in, app.out, email, "Email"); err != nil {
				return err
			}
			password, err := promptPassword(app.out)
			if err != nil {
				return err
			}

			resp, err := app.api.Login(ctx, model.LoginRequest{Email: email, Password: password})
			if err != nil {
				return err
			}
			if err := app.store.SaveSession(ctx, app.session, resp.Token, resp.User); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Logged in as %s\n", resp.User.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.store.ClearSession(cmd.Context(), app.session); err != nil {
				return err
			}
			fmt.Fprintln(app.out, "Logged out")
			return nil
		},
	}
}

func newMeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the logged-in user (verifies the session with the server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.requireSession(); err != nil {
				return err
			}
			user, err := app.api.Me(ctx)
			if err != nil {
				return app.handleAPIError(ctx, err)
			}
			fmt.Fprintf(app.out, "%s <%s> (%s)\n", user.Username, user.Email, user.ID)
			return nil
		},
	}
}
