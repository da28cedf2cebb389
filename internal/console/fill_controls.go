package console

import (
	"context"
	"strconv"
	"sync"

	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/viewmode"

	"go.uber.org/zap"
)

// FillAPI is the fill-request part of a registration client.
type FillAPI interface {
	FillRequests(ctx context.Context, ticketID string) (viewmode.Flags, error)
	SetTeamFill(ctx context.Context, ticketID string, active bool) (viewmode.Flags, error)
	SetClientFill(ctx context.Context, ticketID string, active bool) (viewmode.Flags, error)
}

// FillControls backs the "Team Fill" and "Ask Client to Fill" toggles of one
// ticket. Every change goes through the API first; the returned flags are
// then mirrored into the store so other screens see them without a fetch.
type FillControls struct {
	api      FillAPI
	store    kvstore.Store
	ticketID string
	role     viewmode.Role
	log      *zap.Logger

	mu    sync.Mutex
	flags viewmode.Flags
}

// NewFillControls loads the flags of ticketID. When the API is unreachable
// the last mirrored flags are used.
func NewFillControls(ctx context.Context, api FillAPI, store kvstore.Store, ticketID string, role viewmode.Role, log *zap.Logger) (*FillControls, error) {
	fc := &FillControls{
		api:      api,
		store:    store,
		ticketID: ticketID,
		role:     role,
		log:      logging.OrNop(log).With(zap.String("ticket_id", ticketID)),
	}
	flags, err := api.FillRequests(ctx, ticketID)
	if err != nil {
		fc.log.Warn("load fill requests", zap.Error(err))
		ok, lerr := kvstore.GetJSON(ctx, store, kvstore.TeamFillKey(ticketID), &flags)
		if lerr != nil {
			return nil, lerr
		}
		if !ok {
			return nil, err
		}
	}
	fc.flags = flags
	if err := fc.mirror(ctx, flags); err != nil {
		return nil, err
	}
	return fc, nil
}

func (fc *FillControls) Flags() viewmode.Flags {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return fc.flags
}

// Mode resolves the viewer mode for the controls' viewer.
func (fc *FillControls) Mode() viewmode.Mode {
	return viewmode.Resolve(fc.Flags(), viewmode.AdminFilling(fc.role))
}

func (fc *FillControls) FieldsDisabled() bool { return fc.Mode().FieldsDisabled() }

// SetTeamFill turns the internal team takeover on or off.
func (fc *FillControls) SetTeamFill(ctx context.Context, active bool) error {
	return fc.update(ctx, func() (viewmode.Flags, error) {
		return fc.api.SetTeamFill(ctx, fc.ticketID, active)
	})
}

// AskClientToFill hands the form back to the client, or takes it back.
func (fc *FillControls) AskClientToFill(ctx context.Context, active bool) error {
	return fc.update(ctx, func() (viewmode.Flags, error) {
		return fc.api.SetClientFill(ctx, fc.ticketID, active)
	})
}

func (fc *FillControls) ToggleTeamFill(ctx context.Context) error {
	return fc.SetTeamFill(ctx, !fc.Flags().TeamFill)
}

func (fc *FillControls) ToggleClientFill(ctx context.Context) error {
	return fc.AskClientToFill(ctx, !fc.Flags().ClientFillRequested)
}

func (fc *FillControls) update(ctx context.Context, call func() (viewmode.Flags, error)) error {
	flags, err := call()
	if err != nil {
		return err
	}
	fc.mu.Lock()
	fc.flags = flags
	fc.mu.Unlock()
	fc.log.Info("fill request updated",
		zap.Bool("team_fill", flags.TeamFill),
		zap.Bool("client_fill_requested", flags.ClientFillRequested))
	return fc.mirror(ctx, flags)
}

func (fc *FillControls) mirror(ctx context.Context, flags viewmode.Flags) error {
	if err := fc.store.Set(ctx, kvstore.KeyTeamFill, strconv.FormatBool(flags.TeamFill)); err != nil {
		return err
	}
	return kvstore.SetJSON(ctx, fc.store, kvstore.TeamFillKey(fc.ticketID), flags)
}
