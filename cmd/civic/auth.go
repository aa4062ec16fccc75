package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignupCmd(a *app) *cobra.Command {
	var email, password, fullName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new citizen account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.auth.SignUp(cmd.Context(), email, password, fullName)
			if err != nil {
				return err
			}
			fmt.Printf("welcome, %s (%s)\n", displayName(user.FullName, user.Email), user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&fullName, "name", "", "full name (optional)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an existing account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.auth.SignIn(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("signed in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the current session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.auth.SignOut(cmd.Context())
			fmt.Println("signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session user",
		RunE: func(_ *cobra.Command, _ []string) error {
			user := a.auth.CurrentUser()
			if user == nil {
				fmt.Println("not signed in")
				return nil
			}
			fmt.Printf("%s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
}

func displayName(fullName, email string) string {
	if fullName != "" {
		return fullName
	}
	return email
}
