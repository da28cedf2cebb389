package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/repository"
	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const ticketAttempts = 3

type RegistrationService struct {
	regs     RegistrationStore
	fills    FillRequestStore
	payments PaymentStore
	log      *zap.Logger
	now      func() time.Time
}

func NewRegistrationService(regs RegistrationStore, fills FillRequestStore, payments PaymentStore, log *zap.Logger) *RegistrationService {
	return &RegistrationService{regs: regs, fills: fills, payments: payments, log: logging.OrNop(log), now: time.Now}
}

// Save creates a draft when body carries no ticket id and updates the
// addressed draft in place otherwise. An unknown ticket id is never turned
// into a new record.
func (s *RegistrationService) Save(ctx context.Context, kind forms.Kind, actor Actor, body dto.SubmitRegistrationDTO) (*models.Registration, error) {
	schema, err := forms.SchemaFor(kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	// keep only fields the schema knows
	flat := forms.Flatten(schema.Group(forms.Flatten(body.Steps)))
	if err := schema.ValidateValues(flat); err != nil {
		return nil, err
	}
	if body.Status != "" && body.Status != models.StatusDraft && body.Status != models.StatusSubmitted {
		return nil, fmt.Errorf("%w: unknown status %q", ErrBadRequest, body.Status)
	}

	if body.TicketID == "" {
		return s.create(ctx, kind, schema, actor, body, flat)
	}
	return s.update(ctx, kind, schema, actor, body, flat)
}

func (s *RegistrationService) create(ctx context.Context, kind forms.Kind, schema forms.Schema, actor Actor, body dto.SubmitRegistrationDTO, flat map[string]any) (*models.Registration, error) {
	clientID := actor.UserID
	if actor.IsStaff() {
		id, err := bson.ObjectIDFromHex(body.ClientID)
		if err != nil {
			return nil, fmt.Errorf("%w: clientId is required when staff starts a registration", ErrBadRequest)
		}
		clientID = id
	}

	now := s.now().UTC()
	reg := &models.Registration{
		Kind:          kind,
		Status:        models.StatusDraft,
		ClientID:      clientID,
		CreatedBy:     actor.UserID,
		FilledByAdmin: actor.IsStaff(),
		Step:          body.Step,
		Fields:        bson.M(flat),
		Package:       body.Package,
		Payment:       body.Payment,
		LastReason:    body.Reason,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if body.Status == models.StatusSubmitted {
		pay, err := s.finalizeCheck(ctx, schema, reg.Fields, clientID, reg.Package, reg.Payment, reg.FilledByAdmin)
		if err != nil {
			return nil, err
		}
		reg.Payment = pay
		reg.Status = models.StatusSubmitted
		reg.SubmittedAt = &now
	}

	var err error
	for attempt := 0; attempt < ticketAttempts; attempt++ {
		reg.ID = bson.NilObjectID
		reg.TicketID = NewTicketID(kind, now)
		err = s.regs.Insert(ctx, reg)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	s.log.Info("registration draft created",
		zap.String("kind", kind.String()),
		zap.String("ticket_id", reg.TicketID),
		zap.String("reason", body.Reason),
		zap.Bool("filled_by_admin", reg.FilledByAdmin),
	)
	return reg, nil
}

func (s *RegistrationService) update(ctx context.Context, kind forms.Kind, schema forms.Schema, actor Actor, body dto.SubmitRegistrationDTO, flat map[string]any) (*models.Registration, error) {
	existing, err := s.find(ctx, kind, body.TicketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, existing); err != nil {
		return nil, err
	}

	mode, err := s.mode(ctx, kind, body.TicketID, actor)
	if err != nil {
		return nil, err
	}
	if mode.FieldsDisabled() {
		return nil, ErrLocked
	}
	if existing.Status == models.StatusSubmitted && !actor.IsStaff() {
		return nil, ErrLocked
	}

	now := s.now().UTC()
	set := bson.M{
		"step":       body.Step,
		"updated_at": now,
	}
	if body.Reason != "" {
		set["last_reason"] = body.Reason
	}
	for k, v := range flat {
		set["fields."+k] = v
	}
	if body.Package != nil {
		set["package"] = body.Package
	}
	if body.Payment != nil {
		set["payment"] = body.Payment
	}
	if actor.IsStaff() {
		set["filled_by_admin"] = true
	}

	if body.Status == models.StatusSubmitted {
		merged := bson.M{}
		for k, v := range existing.Fields {
			merged[k] = v
		}
		for k, v := range flat {
			merged[k] = v
		}
		pkg, pay := existing.Package, existing.Payment
		if body.Package != nil {
			pkg = body.Package
		}
		if body.Payment != nil {
			pay = body.Payment
		}
		verified, err := s.finalizeCheck(ctx, schema, merged, existing.ClientID, pkg, pay, existing.FilledByAdmin || actor.IsStaff())
		if err != nil {
			return nil, err
		}
		if verified != nil {
			set["payment"] = verified
		}
		set["status"] = models.StatusSubmitted
		set["submitted_at"] = now
	}

	reg, err := s.regs.Update(ctx, kind, body.TicketID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update registration: %w", err)
	}

	s.log.Debug("registration draft saved",
		zap.String("kind", kind.String()),
		zap.String("ticket_id", reg.TicketID),
		zap.String("reason", body.Reason),
		zap.Int("fields", len(flat)),
	)
	if body.Status == models.StatusSubmitted {
		s.log.Info("registration submitted", zap.String("kind", kind.String()), zap.String("ticket_id", reg.TicketID))
	}
	return reg, nil
}

// finalizeCheck validates every step and, unless staff filled the form,
// resolves the payment against the recorded one. The client-sent payment is
// only used for its id; the stored record is what gets kept.
func (s *RegistrationService) finalizeCheck(ctx context.Context, schema forms.Schema, fields bson.M, clientID bson.ObjectID, pkg *models.Package, pay *models.Payment, byAdmin bool) (*models.Payment, error) {
	if err := schema.Validate(schema.Group(fields)); err != nil {
		return nil, err
	}
	if byAdmin {
		return pay, nil
	}
	if pkg == nil || pay == nil || pay.PaymentID == "" {
		return nil, ErrPaymentRequired
	}
	stored, err := s.payments.FindByID(ctx, pay.PaymentID)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("submit with unknown payment", zap.String("payment_id", pay.PaymentID))
		return nil, ErrPaymentRequired
	}
	if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	if stored.UserID != clientID || stored.PackageID != pkg.ID || stored.Status != models.PaymentPaid {
		s.log.Warn("submit with mismatched payment",
			zap.String("payment_id", pay.PaymentID),
			zap.String("package_id", pkg.ID),
		)
		return nil, ErrPaymentRequired
	}
	return stored, nil
}

// Get returns one registration the actor may see.
func (s *RegistrationService) Get(ctx context.Context, kind forms.Kind, actor Actor, ticketID string) (*models.Registration, error) {
	reg, err := s.find(ctx, kind, ticketID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// List returns the actor's own registrations, or all of them for staff.
func (s *RegistrationService) List(ctx context.Context, kind forms.Kind, actor Actor) ([]models.Registration, error) {
	clientID := actor.UserID
	if actor.IsStaff() {
		clientID = bson.NilObjectID
	}
	return s.regs.List(ctx, kind, clientID)
}

// References reports whether ref is the value of a document field in one of
// the registrations of kind the actor may see.
func (s *RegistrationService) References(ctx context.Context, kind forms.Kind, actor Actor, ref string) (bool, error) {
	schema, err := forms.SchemaFor(kind)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	regs, err := s.List(ctx, kind, actor)
	if err != nil {
		return false, err
	}
	for _, reg := range regs {
		for _, name := range schema.DocumentFields() {
			if v, ok := reg.Fields[name].(string); ok && v == ref {
				return true, nil
			}
		}
	}
	return false, nil
}

// FillRequests returns the flags of a ticket the actor may see.
func (s *RegistrationService) FillRequests(ctx context.Context, kind forms.Kind, actor Actor, ticketID string) (viewmode.Flags, error) {
	if _, err := s.Get(ctx, kind, actor, ticketID); err != nil {
		return viewmode.Flags{}, err
	}
	fr, err := s.fills.Find(ctx, kind, ticketID)
	if err != nil {
		return viewmode.Flags{}, err
	}
	return fr.Flags, nil
}

// SetTeamFill hands the form to the internal team, or back. Staff and the
// owning client may toggle it.
func (s *RegistrationService) SetTeamFill(ctx context.Context, kind forms.Kind, actor Actor, ticketID string, active bool) (viewmode.Flags, error) {
	return s.setFlag(ctx, kind, actor, ticketID, "team_fill", active)
}

// SetClientFill asks the client to complete the form. Staff only.
func (s *RegistrationService) SetClientFill(ctx context.Context, kind forms.Kind, actor Actor, ticketID string, active bool) (viewmode.Flags, error) {
	if !actor.IsStaff() {
		return viewmode.Flags{}, ErrForbidden
	}
	return s.setFlag(ctx, kind, actor, ticketID, "client_fill_requested", active)
}

func (s *RegistrationService) setFlag(ctx context.Context, kind forms.Kind, actor Actor, ticketID, flag string, active bool) (viewmode.Flags, error) {
	if _, err := s.Get(ctx, kind, actor, ticketID); err != nil {
		return viewmode.Flags{}, err
	}
	fr, err := s.fills.SetFlag(ctx, kind, ticketID, flag, active, actor.UserID)
	if err != nil {
		return viewmode.Flags{}, fmt.Errorf("set %s: %w", flag, err)
	}
	s.log.Info("fill request toggled",
		zap.String("kind", kind.String()),
		zap.String("ticket_id", ticketID),
		zap.String("flag", flag),
		zap.Bool("active", active),
		zap.String("by", actor.UserID.Hex()),
	)
	return fr.Flags, nil
}

func (s *RegistrationService) mode(ctx context.Context, kind forms.Kind, ticketID string, actor Actor) (viewmode.Mode, error) {
	fr, err := s.fills.Find(ctx, kind, ticketID)
	if err != nil {
		return viewmode.SelfService, err
	}
	return viewmode.Resolve(fr.Flags, viewmode.AdminFilling(actor.Role)), nil
}

func (s *RegistrationService) find(ctx context.Context, kind forms.Kind, ticketID string) (*models.Registration, error) {
	reg, err := s.regs.FindByTicket(ctx, kind, ticketID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	return reg, err
}

func authorize(actor Actor, reg *models.Registration) error {
	if actor.IsStaff() || reg.ClientID == actor.UserID {
		return nil
	}
	return ErrForbidden
}
