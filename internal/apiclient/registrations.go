package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/viewmode"

	"golang.org/x/sync/errgroup"
)

const signConcurrency = 4

// Registrations binds the per-kind registration endpoints.
type Registrations struct {
	c    *Client
	kind forms.Kind
}

func (c *Client) Registrations(kind forms.Kind) *Registrations {
	return &Registrations{c: c, kind: kind}
}

func (r *Registrations) Kind() forms.Kind { return r.kind }

func (r *Registrations) path(p string) string { return "/" + r.kind.Segment() + p }

// Submit creates a draft when body has no ticket id and updates it otherwise.
func (r *Registrations) Submit(ctx context.Context, body dto.SubmitRegistrationDTO) (*dto.RegistrationDTO, error) {
	var out dto.RegistrationDTO
	if err := r.c.Post(ctx, r.path("/submit"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Registrations) Get(ctx context.Context, ticketID string) (*dto.RegistrationDTO, error) {
	var out dto.RegistrationDTO
	if err := r.c.Get(ctx, r.path("/"+url.PathEscape(ticketID)), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Registrations) List(ctx context.Context) ([]dto.RegistrationDTO, error) {
	var out []dto.RegistrationDTO
	if err := r.c.Get(ctx, r.path(""), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Registrations) SignedURL(ctx context.Context, fileURL string) (*dto.SignedURLDTO, error) {
	var out dto.SignedURLDTO
	if err := r.c.Get(ctx, r.path("/signed-url"), url.Values{"fileUrl": {fileURL}}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveDocuments signs every document field present in fields and returns
// field name to signed link.
func (r *Registrations) ResolveDocuments(ctx context.Context, fields map[string]any) (map[string]string, error) {
	schema, err := forms.SchemaFor(r.kind)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range schema.DocumentFields() {
		if s, ok := fields[name].(string); ok && s != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	links := make([]string, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(signConcurrency)
	for i, name := range names {
		g.Go(func() error {
			signed, err := r.SignedURL(gctx, fields[name].(string))
			if err != nil {
				return fmt.Errorf("sign %s: %w", name, err)
			}
			links[i] = signed.SignedURL
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(names))
	for i, name := range names {
		out[name] = links[i]
	}
	return out, nil
}

func (r *Registrations) FillRequests(ctx context.Context, ticketID string) (viewmode.Flags, error) {
	var out dto.FillRequestsDTO
	if err := r.c.Get(ctx, r.path("/fill-requests/"+url.PathEscape(ticketID)), nil, &out); err != nil {
		return viewmode.Flags{}, err
	}
	return viewmode.Flags{TeamFill: out.TeamFill, ClientFillRequested: out.ClientFillRequested}, nil
}

func (r *Registrations) SetTeamFill(ctx context.Context, ticketID string, active bool) (viewmode.Flags, error) {
	return r.toggle(ctx, ticketID, "team", active)
}

func (r *Registrations) SetClientFill(ctx context.Context, ticketID string, active bool) (viewmode.Flags, error) {
	return r.toggle(ctx, ticketID, "client", active)
}

func (r *Registrations) toggle(ctx context.Context, ticketID, who string, active bool) (viewmode.Flags, error) {
	var out dto.FillRequestsDTO
	path := r.path("/fill-requests/" + url.PathEscape(ticketID) + "/" + who)
	if err := r.c.Put(ctx, path, dto.FillToggleDTO{Active: active}, &out); err != nil {
		return viewmode.Flags{}, err
	}
	return viewmode.Flags{TeamFill: out.TeamFill, ClientFillRequested: out.ClientFillRequested}, nil
}
