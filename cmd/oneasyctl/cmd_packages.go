package main

import (
	"fmt"
	"text/tabwriter"

	"oneasy-portal/internal/forms"

	"github.com/spf13/cobra"
)

func kindFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVar(dst, "kind", "", "registration kind: startup-india, gst, private-limited or proprietorship")
}

func parseOptionalKind(s string) (forms.Kind, error) {
	if s == "" {
		return "", nil
	}
	return forms.ParseKind(s)
}

func (a *app) packagesCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the packages on offer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseOptionalKind(kind)
			if err != nil {
				return err
			}
			pkgs, err := a.client.Packages(cmd.Context(), k)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tNAME\tPRICE")
			for _, p := range pkgs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t₹%d\n", p.ID, p.Kind.Segment(), p.Name, p.Price)
			}
			return tw.Flush()
		},
	}
	kindFlag(cmd, &kind)
	return cmd
}

func (a *app) payCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pay <package-id>",
		Short: "Pay for a package; a new draft can be started afterwards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pkgs, err := a.client.Packages(ctx, "")
			if err != nil {
				return err
			}
			for _, p := range pkgs {
				if p.ID != args[0] {
					continue
				}
				pay, err := a.client.Pay(ctx, p)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "paid ₹%d for %s (%s)\n", pay.Amount, p.Name, pay.PaymentID)
				return nil
			}
			return fmt.Errorf("no package %q", args[0])
		},
	}
}
