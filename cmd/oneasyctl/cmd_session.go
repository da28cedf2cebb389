package main

import (
	"errors"
	"fmt"

	"oneasy-portal/internal/guard"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email-or-phone>",
		Short: "Log in and remember the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			resp, err := a.client.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", resp.User.Name, resp.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the session, selected package and draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	var remote bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if remote {
				u, err := a.client.Me(ctx)
				if err != nil {
					return err
				}
				return printYAML(cmd.OutOrStdout(), u)
			}
			u, ok, err := a.client.CurrentUser(ctx)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("not logged in")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> %s\n", u.Name, u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the API instead of the stored session")
	return cmd
}

func (a *app) routeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route <path>",
		Short: "Show what the portal would do when the session opens path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := guard.Evaluate(cmd.Context(), a.store, args[0])
			if err != nil {
				return err
			}
			if d.Location != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", d.Action, d.Location)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), d.Action)
			}
			return nil
		},
	}
}
