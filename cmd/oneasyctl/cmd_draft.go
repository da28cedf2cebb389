package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"oneasy-portal/internal/apiclient"
	"oneasy-portal/internal/draft"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func (a *app) draftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Fill, inspect and list registration drafts",
	}
	cmd.AddCommand(a.draftFillCmd(), a.draftShowCmd(), a.draftListCmd())
	return cmd
}

func (a *app) currentUser(cmd *cobra.Command) (*models.User, error) {
	u, ok, err := a.client.CurrentUser(cmd.Context())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("not logged in; run oneasyctl login first")
	}
	return u, nil
}

func readForm(path string) (forms.Steps, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var steps forms.Steps
	if err := yaml.Unmarshal(raw, &steps); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return steps, nil
}

func (a *app) draftFillCmd() *cobra.Command {
	var (
		kind, file, ticket, clientID string
		submit                       bool
		quiet                        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "fill",
		Short: "Fill a draft step by step from a YAML file",
		Long: `Fills a registration draft from a YAML file keyed by step:

  step1:
    businessName: Acme Traders
    phone: "9123456789"
  step2:
    city: Pune

Each step present in the file is entered and validated, then saved with
"Next" exactly as the web form does. Without --ticket the remembered draft of
the same kind is resumed, or a new one is created on the first save.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			k, err := forms.ParseKind(kind)
			if err != nil {
				return err
			}
			values, err := readForm(file)
			if err != nil {
				return err
			}
			u, err := a.currentUser(cmd)
			if err != nil {
				return err
			}

			backend := a.client.Registrations(k)
			cfg := draft.Config{
				Kind:        k,
				QuietPeriod: quiet,
				Role:        u.Role,
				ClientID:    clientID,
				Logger:      a.log,
				OnTicket: func(id string) {
					fmt.Fprintf(out, "ticket %s\n", id)
				},
			}
			sess, err := draft.Open(ctx, backend, a.store, cfg, ticket)
			if errors.Is(err, draft.ErrPaymentRequired) {
				return errors.New("select and pay for a package first: oneasyctl pay <package-id>")
			}
			if err != nil {
				return err
			}
			defer sess.Close()

			// the ticket may have been resumed from the store rather than --ticket
			if id := sess.TicketID(); id != "" {
				flags, err := backend.FillRequests(ctx, id)
				if err != nil {
					a.log.Warn("load fill requests", zap.String("ticket_id", id), zap.Error(err))
				} else if err := sess.SetFlags(flags); err != nil {
					return err
				}
			}

			if err := fillSteps(cmd, sess, k, values, submit); err != nil {
				return err
			}
			if !submit {
				fmt.Fprintf(out, "draft %s saved at step %d\n", sess.TicketID(), sess.Snapshot().Step+1)
				return nil
			}
			res, err := sess.Submit(ctx)
			if err != nil {
				return reportValidation(cmd, err)
			}
			if res.Err != nil {
				fmt.Fprintf(out, "submitted %s, but the confirmation failed: %v\n", res.TicketID, res.Err)
				return nil
			}
			fmt.Fprintf(out, "submitted %s; continue at %s\n", res.TicketID, res.Redirect)
			return nil
		},
	}
	f := cmd.Flags()
	kindFlag(cmd, &kind)
	f.StringVarP(&file, "file", "f", "", "YAML form file")
	f.StringVar(&ticket, "ticket", "", "continue this ticket")
	f.StringVar(&clientID, "client", "", "client id when staff start a draft")
	f.BoolVar(&submit, "submit", false, "submit after the last step")
	f.DurationVar(&quiet, "quiet", draft.DefaultQuietPeriod, "autosave quiet period")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// fillSteps enters the file's values from the session's current step on and
// moves forward while the file has values for the following step.
func fillSteps(cmd *cobra.Command, sess *draft.Session, kind forms.Kind, values forms.Steps, submit bool) error {
	schema := forms.MustSchema(kind)
	last := len(schema.Steps) - 1
	for i := sess.Snapshot().Step; i <= last; i++ {
		name := forms.StepName(i)
		vals, ok := values[name]
		if !ok {
			return nil
		}
		for field, v := range vals {
			if err := sess.Set(name, field, v); err != nil {
				return fmt.Errorf("%s.%s: %w", name, field, err)
			}
		}
		if i == last {
			return nil
		}
		if _, more := values[forms.StepName(i+1)]; !more && !submit {
			return nil
		}
		if err := sess.Next(cmd.Context()); err != nil {
			return reportValidation(cmd, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", name)
	}
	return nil
}

func reportValidation(cmd *cobra.Command, err error) error {
	var verr *forms.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	for _, f := range verr.Fields {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s.%s %s\n", f.Step, f.Field, f.Message)
	}
	return errors.New("form has invalid fields")
}

func (a *app) draftShowCmd() *cobra.Command {
	var documents bool
	cmd := &cobra.Command{
		Use:   "show <kind> <ticket>",
		Short: "Print a registration grouped by step",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := forms.ParseKind(args[0])
			if err != nil {
				return err
			}
			regs := a.client.Registrations(k)
			reg, err := regs.Get(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			view := struct {
				Ticket    string            `yaml:"ticket"`
				Status    string            `yaml:"status"`
				Step      int               `yaml:"step"`
				Steps     forms.Steps       `yaml:"steps"`
				Documents map[string]string `yaml:"documents,omitempty"`
			}{
				Ticket: reg.TicketID,
				Status: string(reg.Status),
				Step:   reg.Step + 1,
				Steps:  forms.MustSchema(k).Group(reg.Fields),
			}
			if documents {
				if view.Documents, err = regs.ResolveDocuments(cmd.Context(), reg.Fields); err != nil {
					return err
				}
			}
			return printYAML(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().BoolVar(&documents, "documents", false, "include signed document links")
	return cmd
}

func (a *app) draftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List registrations of a kind",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := forms.ParseKind(args[0])
			if err != nil {
				return err
			}
			regs, err := a.client.Registrations(k).List(cmd.Context())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TICKET\tSTATUS\tSTEP\tUPDATED")
			for _, r := range regs {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.TicketID, r.Status, r.Step+1, r.UpdatedAt.Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
}

var _ draft.Backend = (*apiclient.Registrations)(nil)
