package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/aaravmahajanofficial/grocery-storefront/internal/errors"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string

	adminUsername string
	adminPassword string

	registerName     string
	registerEmail    string
	registerPassword string
	registerAdmin    bool
)

// loginCmd starts a customer session
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			password, err := passwordOrPrompt(cmd, loginPassword)
			if err != nil {
				return err
			}

			session, err := a.sessions.Login(ctx, loginEmail, password)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), session.User, func(w io.Writer) {
				fmt.Fprintf(w, "Welcome, %s!\n", session.User.Name)
			})
		})
	},
}

// adminLoginCmd starts an admin session
var adminLoginCmd = &cobra.Command{
	Use:   "admin-login",
	Short: "Log in to the admin panel",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			password, err := passwordOrPrompt(cmd, adminPassword)
			if err != nil {
				return err
			}

			session, err := a.sessions.AdminLogin(ctx, adminUsername, password)
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), session.User, func(w io.Writer) {
				fmt.Fprintf(w, "Admin login successful, welcome %s.\n", session.User.Name)
			})
		})
	},
}

// registerCmd creates an account; it does not log in
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account on the backend.

Registration never logs you in; run 'login' afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			password, err := passwordOrPrompt(cmd, registerPassword)
			if err != nil {
				return err
			}

			if err := a.sessions.Register(ctx, registerName, registerEmail, password, registerAdmin); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Registration successful. You can now log in.")
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {

			if err := a.sessions.Logout(ctx); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			session := a.sessions.Current()

			var user any
			if session != nil {
				user = session.User
			}

			return render(cmd.OutOrStdout(), user, func(w io.Writer) {
				printSession(w, session)
			})
		})
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	_ = loginCmd.MarkFlagRequired("email")

	adminLoginCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "Admin username")
	adminLoginCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "Admin password (prompted when omitted)")
	_ = adminLoginCmd.MarkFlagRequired("username")

	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "Display name")
	registerCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "Account password (prompted when omitted)")
	registerCmd.Flags().BoolVar(&registerAdmin, "admin", false, "Request an admin account")
	_ = registerCmd.MarkFlagRequired("name")
	_ = registerCmd.MarkFlagRequired("email")
}

func passwordOrPrompt(cmd *cobra.Command, password string) (string, error) {

	if password != "" {
		return password, nil
	}

	line, err := prompt(bufio.NewReader(cmd.InOrStdin()), cmd.ErrOrStderr(), "Password: ")
	if err != nil {
		return "", errors.ValidationError("Password is required").WithError(err)
	}

	return line, nil
}
