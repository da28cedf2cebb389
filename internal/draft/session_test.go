package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/viewmode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackend struct {
	mu        sync.Mutex
	calls     []dto.SubmitRegistrationDTO
	records   map[string]*dto.RegistrationDTO
	active    int
	maxActive int
	creates   int
	delay     time.Duration
	gate      chan struct{}
	fail      error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{records: map[string]*dto.RegistrationDTO{}}
}

func (b *fakeBackend) Submit(ctx context.Context, body dto.SubmitRegistrationDTO) (*dto.RegistrationDTO, error) {
	b.mu.Lock()
	b.calls = append(b.calls, body)
	b.active++
	if b.active > b.maxActive {
		b.maxActive = b.active
	}
	gate, delay := b.gate, b.delay
	b.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
		}
	}
	time.Sleep(delay)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.active--
	if b.fail != nil {
		return nil, b.fail
	}
	rec, ok := b.records[body.TicketID]
	if body.TicketID == "" {
		b.creates++
		rec = &dto.RegistrationDTO{
			TicketID: fmt.Sprintf("GST_20261016_%08X", b.creates),
			Kind:     forms.GST,
			Status:   models.StatusDraft,
			Fields:   map[string]any{},
		}
		b.records[rec.TicketID] = rec
	} else if !ok {
		return nil, errors.New("not found")
	}
	for k, v := range forms.Flatten(body.Steps) {
		rec.Fields[k] = v
	}
	rec.Step = body.Step
	if body.Status != "" {
		rec.Status = body.Status
	}
	out := *rec
	return &out, nil
}

func (b *fakeBackend) Get(_ context.Context, ticketID string) (*dto.RegistrationDTO, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.records[ticketID]
	if !ok {
		return nil, errors.New("not found")
	}
	out := *rec
	return &out, nil
}

func (b *fakeBackend) Calls() []dto.SubmitRegistrationDTO {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.SubmitRegistrationDTO{}, b.calls...)
}

func (b *fakeBackend) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

func paidStore(t *testing.T) *kvstore.Memory {
	t.Helper()
	ctx := context.Background()
	s := kvstore.NewMemory()
	require.NoError(t, kvstore.SetJSON(ctx, s, kvstore.KeySelectedPackage, models.Package{ID: "gst-basic", Kind: forms.GST, Name: "Basic", Price: 1499}))
	require.NoError(t, kvstore.SetJSON(ctx, s, kvstore.KeyPaymentDetails, models.Payment{PaymentID: "pay_1", PackageID: "gst-basic", Amount: 1499, Status: models.PaymentPaid}))
	return s
}

func clientConfig() Config {
	return Config{Kind: forms.GST, Role: viewmode.RoleClient, QuietPeriod: time.Hour}
}

var gstForm = forms.Steps{
	"step1": {"businessName": "Acme Traders", "businessType": "Proprietorship", "panNumber": "ABCDE1234F", "email": "a@b.com", "phone": "9123456789"},
	"step2": {"addressLine1": "1 MG Road", "city": "Pune", "state": "MH", "pincode": "411001"},
	"step3": {"promoterName": "Asha", "promoterPan": "ABCDE1234F", "promoterAadhaar": "1234 5678 9012"},
	"step4": {"panCardUrl": "doc://1/pan.pdf", "addressProofUrl": "doc://2/bill.pdf", "photoUrl": "doc://3/photo.jpg"},
}

func fill(t *testing.T, s *Session, step string) {
	t.Helper()
	for field, v := range gstForm[step] {
		require.NoError(t, s.Set(step, field, v))
	}
}

func TestNextCreatesDraftOnce(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	store := paidStore(t)

	var mu sync.Mutex
	var issued []string
	cfg := clientConfig()
	cfg.OnTicket = func(id string) {
		mu.Lock()
		issued = append(issued, id)
		mu.Unlock()
	}
	s, err := Open(ctx, b, store, cfg, "")
	require.NoError(t, err)
	defer s.Close()

	fill(t, s, "step1")
	require.NoError(t, s.Next(ctx))

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "next-step-1", calls[0].Reason)
	assert.Empty(t, calls[0].TicketID)
	assert.Equal(t, "9123456789", calls[0].Steps["step1"]["phone"])

	ticket := s.TicketID()
	require.NotEmpty(t, ticket)
	mu.Lock()
	assert.Equal(t, []string{ticket}, issued)
	mu.Unlock()
	saved, ok, err := store.Get(ctx, kvstore.KeyDraftTicketID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, ticket, saved)
	assert.Equal(t, 1, s.Snapshot().Step)

	fill(t, s, "step2")
	require.NoError(t, s.Next(ctx))
	calls = b.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "next-step-2", calls[1].Reason)
	assert.Equal(t, ticket, calls[1].TicketID)
	assert.Equal(t, 1, b.creates)
	mu.Lock()
	assert.Len(t, issued, 1)
	mu.Unlock()
}

func TestNextKeepsStepOnValidationError(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	s, err := Open(ctx, b, paidStore(t), clientConfig(), "")
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Set("step1", "phone", "123"))
	err = s.Next(ctx)
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, b.Calls())
	assert.Equal(t, 0, s.Snapshot().Step)
}

func TestAutosaveCoalescesEdits(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	cfg := clientConfig()
	cfg.QuietPeriod = 30 * time.Millisecond
	s, err := Open(ctx, b, paidStore(t), cfg, "")
	require.NoError(t, err)

	for _, name := range []string{"A", "Ac", "Acm", "Acme"} {
		require.NoError(t, s.Set("step1", "businessName", name))
	}
	assert.Eventually(t, func() bool { return len(b.Calls()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ReasonAutosave, calls[0].Reason)
	assert.Equal(t, "Acme", calls[0].Steps["step1"]["businessName"])

	// nothing dirty, so close does not save
	require.NoError(t, s.Close())
	assert.Len(t, b.Calls(), 1)
}

func TestSavesNeverOverlap(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.delay = 20 * time.Millisecond
	cfg := clientConfig()
	cfg.QuietPeriod = time.Millisecond
	s, err := Open(ctx, b, paidStore(t), cfg, "")
	require.NoError(t, err)

	for i := 0; i < 15; i++ {
		require.NoError(t, s.Set("step1", "businessName", fmt.Sprintf("Acme %d", i)))
		time.Sleep(3 * time.Millisecond)
	}
	fill(t, s, "step1")
	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Close())

	b.mu.Lock()
	defer b.mu.Unlock()
	assert.Equal(t, 1, b.maxActive)
	assert.Equal(t, 1, b.creates)
	for _, c := range b.calls[1:] {
		assert.NotEmpty(t, c.TicketID)
	}
}

func TestLoadedDraftOnlyUpdates(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	const ticket = "GST_20261016_0000ABCD"
	b.records[ticket] = &dto.RegistrationDTO{
		TicketID: ticket,
		Kind:     forms.GST,
		Status:   models.StatusDraft,
		Step:     1,
		Fields:   map[string]any{"businessName": "Acme", "city": "Pune", "legacy": "x"},
	}

	// no package in store: an existing ticket does not need one
	s, err := Open(ctx, b, kvstore.NewMemory(), clientConfig(), ticket)
	require.NoError(t, err)
	defer s.Close()

	snap := s.Snapshot()
	assert.Equal(t, ticket, snap.TicketID)
	assert.Equal(t, 1, snap.Step)
	assert.Equal(t, "Acme", snap.Steps["step1"]["businessName"])
	assert.Equal(t, "Pune", snap.Steps["step2"]["city"])
	assert.False(t, snap.Dirty)
	assert.Empty(t, b.Calls())

	fill(t, s, "step2")
	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Set("step3", "promoterName", "Asha"))
	require.NoError(t, s.Close())

	calls := b.Calls()
	require.Len(t, calls, 2)
	for _, c := range calls {
		assert.Equal(t, ticket, c.TicketID)
	}
	assert.Equal(t, ReasonClose, calls[1].Reason)
	assert.Zero(t, b.creates)
}

func TestOpenRequiresPayment(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()

	_, err := Open(ctx, b, kvstore.NewMemory(), clientConfig(), "")
	assert.ErrorIs(t, err, ErrPaymentRequired)

	// a remembered ticket of another kind is not resumed
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, kvstore.KeyDraftTicketID, "PVT_20261016_00000001"))
	_, err = Open(ctx, b, store, clientConfig(), "")
	assert.ErrorIs(t, err, ErrPaymentRequired)

	cfg := clientConfig()
	cfg.Role = viewmode.RoleAdmin
	cfg.ClientID = "64b7f0c2a1b2c3d4e5f60718"
	s, err := Open(ctx, b, kvstore.NewMemory(), cfg, "")
	require.NoError(t, err)
	fill(t, s, "step1")
	require.NoError(t, s.Next(ctx))
	require.NoError(t, s.Close())
	assert.Equal(t, cfg.ClientID, b.Calls()[0].ClientID)
}

func TestOpenResumesRememberedDraft(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	const ticket = "GST_20261016_00000042"
	b.records[ticket] = &dto.RegistrationDTO{TicketID: ticket, Kind: forms.GST, Status: models.StatusDraft, Fields: map[string]any{"businessName": "Acme"}}
	store := kvstore.NewMemory()
	require.NoError(t, store.Set(ctx, kvstore.KeyDraftTicketID, ticket))

	s, err := Open(ctx, b, store, clientConfig(), "")
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, ticket, s.TicketID())
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	store := paidStore(t)
	s, err := Open(ctx, b, store, clientConfig(), "")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Submit(ctx)
	var verr *forms.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, b.Calls())

	for step := range gstForm {
		fill(t, s, step)
	}
	out, err := s.Submit(ctx)
	require.NoError(t, err)
	require.NoError(t, out.Err)
	assert.Equal(t, "/dashboard", out.Redirect)
	assert.Equal(t, DefaultRedirectAfter, out.After)
	assert.NotEmpty(t, out.TicketID)

	calls := b.Calls()
	require.Len(t, calls, 1)
	last := calls[0]
	assert.Equal(t, ReasonFinalSubmit, last.Reason)
	assert.Equal(t, models.StatusSubmitted, last.Status)
	require.NotNil(t, last.Package)
	assert.Equal(t, "gst-basic", last.Package.ID)
	require.NotNil(t, last.Payment)
	assert.Equal(t, "pay_1", last.Payment.PaymentID)

	assert.Empty(t, store.Keys())
	assert.True(t, s.Snapshot().Submitted)
	assert.ErrorIs(t, s.Set("step1", "businessName", "x"), ErrSubmitted)
	_, err = s.Submit(ctx)
	assert.ErrorIs(t, err, ErrSubmitted)
}

func TestSubmitFailureStillRedirects(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.fail = errors.New("gateway timeout")
	store := paidStore(t)
	cfg := clientConfig()
	cfg.Role = viewmode.RoleAdmin
	cfg.ClientID = "64b7f0c2a1b2c3d4e5f60718"
	s, err := Open(ctx, b, store, cfg, "")
	require.NoError(t, err)
	defer s.Close()

	for step := range gstForm {
		fill(t, s, step)
	}
	out, err := s.Submit(ctx)
	require.NoError(t, err)
	assert.EqualError(t, out.Err, "gateway timeout")
	assert.Equal(t, "/admin/dashboard", out.Redirect)
	assert.False(t, s.Snapshot().Submitted)

	_, ok, err := store.Get(ctx, kvstore.KeySelectedPackage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCancelledSubmitKeepsFormLocked(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	b.gate = make(chan struct{})
	s, err := Open(ctx, b, paidStore(t), clientConfig(), "")
	require.NoError(t, err)
	defer s.Close()

	for step := range gstForm {
		fill(t, s, step)
	}
	submitCtx, cancel := context.WithCancel(ctx)
	outc := make(chan SubmitOutcome, 1)
	go func() {
		out, err := s.Submit(submitCtx)
		assert.NoError(t, err)
		outc <- out
	}()
	require.Eventually(t, func() bool { return b.Active() == 1 }, time.Second, time.Millisecond)
	cancel()
	out := <-outc
	assert.ErrorIs(t, out.Err, context.Canceled)

	// the final save is still running
	assert.True(t, s.Snapshot().Saving)
	assert.ErrorIs(t, s.Set("step1", "businessName", "x"), ErrSubmitted)
	_, err = s.Submit(ctx)
	assert.ErrorIs(t, err, ErrSubmitted)

	close(b.gate)
	require.Eventually(t, func() bool { return s.Snapshot().Submitted }, time.Second, time.Millisecond)
	assert.Len(t, b.Calls(), 1)
}

func TestReloadDiscardsStaleSave(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	const first, second = "GST_20261016_00000001", "GST_20261016_00000002"
	b.records[first] = &dto.RegistrationDTO{TicketID: first, Kind: forms.GST, Fields: map[string]any{"businessName": "First"}}
	b.records[second] = &dto.RegistrationDTO{TicketID: second, Kind: forms.GST, Step: 2, Fields: map[string]any{"businessName": "Second"}}
	b.gate = make(chan struct{})

	s, err := Open(ctx, b, kvstore.NewMemory(), clientConfig(), first)
	require.NoError(t, err)
	defer s.Close()

	fill(t, s, "step1")
	nextErr := make(chan error, 1)
	go func() { nextErr <- s.Next(ctx) }()
	require.Eventually(t, func() bool { return b.Active() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.Reload(ctx, second))
	close(b.gate)
	require.NoError(t, <-nextErr)

	snap := s.Snapshot()
	assert.Equal(t, second, snap.TicketID)
	assert.Equal(t, 2, snap.Step)
	assert.Equal(t, "Second", snap.Steps["step1"]["businessName"])
	assert.False(t, snap.Dirty)
	require.Len(t, b.Calls(), 1)
	assert.Equal(t, first, b.Calls()[0].TicketID)
}

func TestFieldsDisabledByMode(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	const ticket = "GST_20261016_0000BEEF"
	b.records[ticket] = &dto.RegistrationDTO{TicketID: ticket, Kind: forms.GST, Fields: map[string]any{}}

	cfg := clientConfig()
	cfg.Flags = viewmode.Flags{TeamFill: true}
	s, err := Open(ctx, b, kvstore.NewMemory(), cfg, ticket)
	require.NoError(t, err)
	assert.True(t, s.FieldsDisabled())
	assert.Equal(t, viewmode.TeamFillActive, s.Snapshot().Mode)
	assert.ErrorIs(t, s.Set("step1", "businessName", "x"), ErrFieldsDisabled)
	assert.ErrorIs(t, s.Next(ctx), ErrFieldsDisabled)
	_, err = s.Submit(ctx)
	assert.ErrorIs(t, err, ErrFieldsDisabled)
	assert.Empty(t, b.Calls())
	assert.Equal(t, 0, s.Snapshot().Step)

	require.NoError(t, s.SetFlags(viewmode.Flags{}))
	assert.False(t, s.FieldsDisabled())
	assert.NoError(t, s.Set("step1", "businessName", "x"))
	require.NoError(t, s.Close())

	cfg = clientConfig()
	cfg.Role = viewmode.RoleAdmin
	cfg.Flags = viewmode.Flags{ClientFillRequested: true}
	s, err = Open(ctx, b, kvstore.NewMemory(), cfg, ticket)
	require.NoError(t, err)
	assert.Equal(t, viewmode.ClientFillRequested, s.Snapshot().Mode)
	assert.ErrorIs(t, s.Set("step1", "businessName", "y"), ErrFieldsDisabled)
	require.NoError(t, s.Close())
}

func TestCloseFlushesOnce(t *testing.T) {
	ctx := context.Background()
	b := newFakeBackend()
	s, err := Open(ctx, b, paidStore(t), clientConfig(), "")
	require.NoError(t, err)

	require.NoError(t, s.Set("step1", "businessName", "Acme"))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	calls := b.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, ReasonClose, calls[0].Reason)
	assert.ErrorIs(t, s.Set("step1", "businessName", "x"), ErrClosed)
	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestSetUnknownStep(t *testing.T) {
	s, err := Open(context.Background(), newFakeBackend(), paidStore(t), clientConfig(), "")
	require.NoError(t, err)
	defer s.Close()
	assert.Error(t, s.Set("step9", "x", "y"))
	assert.NoError(t, s.Back())
	assert.Equal(t, 0, s.Snapshot().Step)
}
