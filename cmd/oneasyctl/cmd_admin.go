package main

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"oneasy-portal/dto"
	"oneasy-portal/internal/console"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/listfilter"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/viewmode"

	"github.com/spf13/cobra"
)

func (a *app) noticesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Read and manage notices",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List notices addressed to you, or every notice with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := a.client.Notices
			if all {
				fetch = a.client.AllNotices
			}
			notices, err := fetch(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tFOR\tLINK")
			for _, n := range notices {
				target := "everyone"
				if n.ClientID != nil {
					target = n.ClientID.Hex()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", n.ID.Hex(), n.Title, target, n.Link)
			}
			return tw.Flush()
		},
	}
	list.Flags().BoolVar(&all, "all", false, "every notice (staff)")

	var req dto.NoticeRequest
	var clientID string
	create := &cobra.Command{
		Use:   "create",
		Short: "Publish a notice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clientID != "" {
				req.ClientID = &clientID
			}
			n, err := a.client.CreateNotice(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "notice %s created\n", n.ID.Hex())
			return nil
		},
	}
	cf := create.Flags()
	cf.StringVar(&req.Title, "title", "", "notice title")
	cf.StringVar(&req.Description, "description", "", "notice text")
	cf.StringVar(&req.Link, "link", "", "optional http(s) link")
	cf.StringVar(&clientID, "client", "", "address one client instead of everyone")
	_ = create.MarkFlagRequired("title")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteNotice(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "notice deleted")
			return nil
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func (a *app) clientsCmd() *cobra.Command {
	var (
		q     console.Query
		role  string
		users bool
	)
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Search the client directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := a.client.Clients
			if users {
				fetch = a.client.Users
			}
			dir := console.NewClientDirectory(fetch)
			if err := dir.Load(cmd.Context()); err != nil {
				return err
			}
			q.Role = viewmode.Role(role)
			got, total := dir.View(q)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tROLE")
			for _, u := range got {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID.Hex(), u.Name, u.Email, u.Phone, u.Role)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d\n", len(got), total)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&q.Search, "search", "s", "", "match name, email or phone")
	f.StringVar(&role, "role", "", "only this role")
	f.IntVar(&q.Offset, "offset", 0, "skip this many matches")
	f.IntVar(&q.Limit, "limit", 0, "show at most this many matches")
	f.BoolVar(&users, "all-users", false, "list staff too (superadmin)")
	return cmd
}

func (a *app) directorsCmd() *cobra.Command {
	var org string
	cmd := &cobra.Command{
		Use:   "directors",
		Short: "List directors grouped by organization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			orgs, err := a.client.Organizations(ctx)
			if err != nil {
				return err
			}
			directors, err := a.client.Directors(ctx)
			if err != nil {
				return err
			}
			orgs = listfilter.Search(orgs, org,
				func(o models.Organization) string { return o.Name },
				func(o models.Organization) string { return o.UserID },
			)
			joined, orphans := listfilter.JoinDirectors(orgs, directors)

			w := cmd.OutOrStdout()
			for _, j := range joined {
				fmt.Fprintf(w, "%s (%s)\n", j.Organization.Name, j.Organization.UserID)
				for _, d := range j.Directors {
					fmt.Fprintf(w, "  %s\t%s\t%s\n", d.Name, d.Designation, d.Phone)
				}
			}
			if org == "" && len(orphans) > 0 {
				fmt.Fprintf(w, "without organization: %d\n", len(orphans))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&org, "org", "", "only organizations matching this name or user id")
	return cmd
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func (a *app) fillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fill <team|client> <kind> <ticket> <on|off>",
		Short: "Toggle Team Fill or Ask Client to Fill on a ticket",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			k, err := forms.ParseKind(args[1])
			if err != nil {
				return err
			}
			active, err := parseOnOff(args[3])
			if err != nil {
				return err
			}
			u, err := a.currentUser(cmd)
			if err != nil {
				return err
			}
			fc, err := console.NewFillControls(ctx, a.client.Registrations(k), a.store, args[2], u.Role, a.log)
			if err != nil {
				return err
			}

			var set func(context.Context, bool) error
			switch args[0] {
			case "team":
				set = fc.SetTeamFill
			case "client":
				set = fc.AskClientToFill
			default:
				return fmt.Errorf("unknown toggle %q: use team or client", args[0])
			}
			if err := set(ctx, active); err != nil {
				return err
			}
			flags := fc.Flags()
			fmt.Fprintf(cmd.OutOrStdout(), "team fill %t, client fill requested %t, your view: %s\n",
				flags.TeamFill, flags.ClientFillRequested, fc.Mode())
			return nil
		},
	}
}

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage portal users",
	}

	var name, phone, email, password, role string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a user (clients by admins, staff by superadmins)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := console.NewAddUserForm(a.client, 0)
			defer form.Close()
			for field, v := range map[string]string{"name": name, "phone": phone, "email": email, "password": password, "role": role} {
				if err := form.Set(field, v); err != nil {
					return err
				}
			}
			u, err := form.Submit(cmd.Context())
			if err != nil {
				return reportValidation(cmd, err)
			}
			msg, _ := form.Message()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", msg, u.ID.Hex(), u.Role)
			return nil
		},
	}
	f := add.Flags()
	f.StringVar(&name, "name", "", "full name")
	f.StringVar(&phone, "phone", "", "10 digit mobile number")
	f.StringVar(&email, "email", "", "email address")
	f.StringVar(&password, "password", "", "initial password")
	f.StringVar(&role, "role", "", "client (default), admin or superadmin")

	cmd.AddCommand(add)
	return cmd
}
