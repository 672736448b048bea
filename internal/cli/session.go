package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gameportal/internal/api/request"
	"github.com/mcoot/gameportal/internal/api/response"
	"github.com/mcoot/gameportal/internal/services/auth"
)

func newRegisterCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			if !out.JSON() {
				if strength := auth.PasswordStrength(password); strength != auth.StrengthNone {
					fmt.Printf("Password strength: %s\n", strength)
				}
			}

			var session response.Session
			req := request.RegisterRequest{Username: username, Password: password}
			if err := client.Post("/api/v1/session/register", req, &session); err != nil {
				return err
			}
			out.Print(session)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "pass", "p", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to an existing account",
		Long: `Log in to an existing account.

A fresh portal has the demo accounts admin/admin, guest/guest and
player1/demo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var session response.Session
			req := request.LoginRequest{Username: username, Password: password}
			if err := client.Post("/api/v1/session/login", req, &session); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(session)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "user", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "pass", "p", "", "Password")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/session"); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var session response.Session
			if err := client.Get("/api/v1/session", &session); err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(session)
			return nil
		},
	}
}
