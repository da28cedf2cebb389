// Package draft keeps a multi-step registration form in sync with its
// server-side draft.
//
// A Session is an actor: one goroutine owns the form state and every
// operation is a message to it. Edits restart a quiet-period timer; when it
// fires the loop starts a save unless one is already running, a load is in
// progress or the form is being submitted. Saves run one at a time, so the
// first server-issued ticket id is always known before the next save is
// built and a draft is never created twice.
package draft

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"oneasy-portal/dto"
	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/guard"
	"oneasy-portal/internal/kvstore"
	"oneasy-portal/internal/logging"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/viewmode"

	"go.uber.org/zap"
)

const (
	DefaultQuietPeriod   = time.Second
	DefaultRedirectAfter = 2 * time.Second

	ReasonAutosave    = "autosave"
	ReasonFinalSubmit = "final-submit"
	ReasonClose       = "close"
)

var (
	// ErrPaymentRequired means the form cannot be opened without a selected
	// package and payment; callers redirect away.
	ErrPaymentRequired = errors.New("draft: select and pay for a package first")
	ErrClosed          = errors.New("draft: session closed")
	ErrFieldsDisabled  = errors.New("draft: fields are read-only for this viewer")
	ErrLoading         = errors.New("draft: draft is loading")
	ErrSubmitted       = errors.New("draft: already submitted")
	// ErrStale is returned to a caller whose save was overtaken by a reload.
	ErrStale = errors.New("draft: result discarded after reload")
)

// Backend is the registration API of one kind.
type Backend interface {
	Submit(ctx context.Context, body dto.SubmitRegistrationDTO) (*dto.RegistrationDTO, error)
	Get(ctx context.Context, ticketID string) (*dto.RegistrationDTO, error)
}

type Config struct {
	Kind forms.Kind
	// QuietPeriod is how long edits must pause before an autosave.
	QuietPeriod time.Duration
	// OnTicket is called once, from the session goroutine, when the server
	// issues the draft's ticket id. The web client writes it into the URL.
	OnTicket func(ticketID string)
	// SubmitRedirect defaults to the viewer's role home.
	SubmitRedirect string
	RedirectAfter  time.Duration

	// Role decides whether the viewer fills the form for a client.
	Role viewmode.Role
	// ClientID is sent when staff start a draft for a client.
	ClientID string
	Flags    viewmode.Flags

	Logger *zap.Logger
}

// Snapshot is a copy of the session state.
type Snapshot struct {
	TicketID  string
	Step      int
	Steps     forms.Steps
	Mode      viewmode.Mode
	Dirty     bool
	Saving    bool
	Loading   bool
	Submitted bool
}

// SubmitOutcome is returned by Submit even when the final save failed: the
// draft already exists server-side and the caller navigates away regardless.
type SubmitOutcome struct {
	TicketID string
	Redirect string
	After    time.Duration
	Err      error
}

type saveJob struct {
	reason  string
	submit  bool
	advance bool
	reply   chan error
}

type saveResult struct {
	job *saveJob
	gen uint64
	reg *dto.RegistrationDTO
	err error
}

type loadResult struct {
	gen      uint64
	ticketID string
	reg      *dto.RegistrationDTO
	err      error
	reply    chan error
}

type Session struct {
	cfg     Config
	backend Backend
	store   kvstore.Store
	schema  forms.Schema
	log     *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	cmds    chan func()
	results chan saveResult
	loads   chan loadResult
	done    chan struct{}
	once    sync.Once

	// owned by the loop goroutine
	steps       forms.Steps
	step        int
	ticket      string
	gen         uint64
	flags       viewmode.Flags
	pkg         *models.Package
	pay         *models.Payment
	dirty       bool
	autosave    bool
	inflight    bool
	loading     bool
	submitting  bool
	submitted   bool
	closing     bool
	queue       []*saveJob
	timer       *time.Timer
	timerC      <-chan time.Time
	closeWaiter chan struct{}
}

// Open loads the draft addressed by ticketID, or resumes the one remembered
// in store, and starts the session. With neither, a client must have a
// selected package and payment in store.
func Open(ctx context.Context, backend Backend, store kvstore.Store, cfg Config, ticketID string) (*Session, error) {
	schema, err := forms.SchemaFor(cfg.Kind)
	if err != nil {
		return nil, err
	}
	if cfg.QuietPeriod <= 0 {
		cfg.QuietPeriod = DefaultQuietPeriod
	}
	if cfg.RedirectAfter <= 0 {
		cfg.RedirectAfter = DefaultRedirectAfter
	}
	if cfg.SubmitRedirect == "" {
		cfg.SubmitRedirect = guard.Home(cfg.Role)
	}

	s := &Session{
		cfg:     cfg,
		backend: backend,
		store:   store,
		schema:  schema,
		log:     logging.OrNop(cfg.Logger).With(zap.String("kind", cfg.Kind.String())),
		cmds:    make(chan func()),
		results: make(chan saveResult, 1),
		loads:   make(chan loadResult, 1),
		done:    make(chan struct{}),
		steps:   forms.Steps{},
		flags:   cfg.Flags,
	}

	var pkg models.Package
	if ok, err := kvstore.GetJSON(ctx, store, kvstore.KeySelectedPackage, &pkg); err != nil {
		return nil, err
	} else if ok {
		s.pkg = &pkg
	}
	var pay models.Payment
	if ok, err := kvstore.GetJSON(ctx, store, kvstore.KeyPaymentDetails, &pay); err != nil {
		return nil, err
	} else if ok {
		s.pay = &pay
	}

	if ticketID == "" {
		if saved, ok, err := store.Get(ctx, kvstore.KeyDraftTicketID); err != nil {
			return nil, err
		} else if ok && cfg.Kind.OwnsTicket(saved) {
			ticketID = saved
		}
	}

	if ticketID == "" {
		if !s.adminFilling() && (s.pkg == nil || s.pay == nil) {
			return nil, ErrPaymentRequired
		}
	} else {
		reg, err := backend.Get(ctx, ticketID)
		if err != nil {
			return nil, fmt.Errorf("load draft %s: %w", ticketID, err)
		}
		s.apply(ticketID, reg)
		if err := store.Set(ctx, kvstore.KeyDraftTicketID, s.ticket); err != nil {
			s.log.Warn("remember draft ticket", zap.Error(err))
		}
	}

	s.ctx, s.cancel = context.WithCancel(context.WithoutCancel(ctx))
	go s.loop()
	return s, nil
}

// apply replaces the form with a loaded record. It never schedules a save.
func (s *Session) apply(ticketID string, reg *dto.RegistrationDTO) {
	s.steps = s.schema.Group(reg.Fields)
	if s.steps == nil {
		s.steps = forms.Steps{}
	}
	s.ticket = reg.TicketID
	if s.ticket == "" {
		s.ticket = ticketID
	}
	s.step = clamp(reg.Step, 0, len(s.schema.Steps)-1)
	if reg.Package != nil {
		s.pkg = reg.Package
	}
	if reg.Payment != nil {
		s.pay = reg.Payment
	}
	s.submitted = reg.Status == models.StatusSubmitted
	s.dirty = false
	s.autosave = false
}

func (s *Session) adminFilling() bool {
	return viewmode.AdminFilling(s.cfg.Role)
}

func (s *Session) mode() viewmode.Mode {
	return viewmode.Resolve(s.flags, s.adminFilling())
}

func (s *Session) loop() {
	defer close(s.done)
	defer s.cancel()
	for {
		if s.closing && !s.inflight && !s.loading && len(s.queue) == 0 {
			s.stopTimer()
			close(s.closeWaiter)
			return
		}
		select {
		case fn := <-s.cmds:
			fn()
		case <-s.timerC:
			s.timerC = nil
			s.autosave = true
		case res := <-s.results:
			s.finishSave(res)
		case res := <-s.loads:
			s.finishLoad(res)
		}
		s.pump()
	}
}

// pump starts the next save when nothing else is running.
func (s *Session) pump() {
	if s.inflight || s.loading {
		return
	}
	if len(s.queue) > 0 {
		job := s.queue[0]
		s.queue = s.queue[1:]
		s.startSave(job)
		return
	}
	if s.autosave && s.dirty && !s.submitting && !s.submitted {
		s.autosave = false
		s.startSave(&saveJob{reason: ReasonAutosave})
		return
	}
	s.autosave = false
}

func (s *Session) startSave(job *saveJob) {
	body := dto.SubmitRegistrationDTO{
		TicketID: s.ticket,
		Reason:   job.reason,
		Step:     s.step,
		Steps:    cloneSteps(s.steps),
	}
	if s.ticket == "" && s.adminFilling() {
		body.ClientID = s.cfg.ClientID
	}
	if job.submit {
		body.Status = models.StatusSubmitted
		body.Package = s.pkg
		body.Payment = s.pay
	}
	s.dirty = false
	s.inflight = true
	gen := s.gen
	s.log.Debug("saving draft", zap.String("ticket_id", s.ticket), zap.String("reason", job.reason))

	go func() {
		reg, err := s.backend.Submit(s.ctx, body)
		s.results <- saveResult{job: job, gen: gen, reg: reg, err: err}
	}()
}

func (s *Session) finishSave(res saveResult) {
	s.inflight = false
	job := res.job
	if job.submit {
		s.submitting = false
	}

	if res.gen != s.gen {
		s.log.Debug("discarding stale save result", zap.String("reason", job.reason))
		reply(job, ErrStale)
		return
	}

	if res.err != nil {
		s.log.Warn("draft save failed", zap.String("reason", job.reason), zap.String("ticket_id", s.ticket), zap.Error(res.err))
	} else if res.reg != nil {
		s.adoptTicket(res.reg.TicketID)
		if job.submit {
			s.submitted = true
		}
	}

	if job.advance {
		s.step = clamp(s.step+1, 0, len(s.schema.Steps)-1)
	}
	reply(job, res.err)
}

// adoptTicket records the first server-issued ticket id. Later ids are ignored.
func (s *Session) adoptTicket(id string) {
	if id == "" {
		return
	}
	if s.ticket != "" {
		if id != s.ticket {
			s.log.Warn("server returned a different ticket id", zap.String("ticket_id", s.ticket), zap.String("returned", id))
		}
		return
	}
	s.ticket = id
	s.log.Info("draft ticket issued", zap.String("ticket_id", id))
	if err := s.store.Set(s.ctx, kvstore.KeyDraftTicketID, id); err != nil {
		s.log.Warn("remember draft ticket", zap.Error(err))
	}
	if s.cfg.OnTicket != nil {
		s.cfg.OnTicket(id)
	}
}

func (s *Session) finishLoad(res loadResult) {
	if res.gen != s.gen {
		res.reply <- ErrStale
		return
	}
	s.loading = false
	if res.err != nil {
		res.reply <- fmt.Errorf("load draft %s: %w", res.ticketID, res.err)
		return
	}
	s.apply(res.ticketID, res.reg)
	if err := s.store.Set(s.ctx, kvstore.KeyDraftTicketID, s.ticket); err != nil {
		s.log.Warn("remember draft ticket", zap.Error(err))
	}
	res.reply <- nil
}

func (s *Session) restartTimer() {
	s.stopTimer()
	s.timer = time.NewTimer(s.cfg.QuietPeriod)
	s.timerC = s.timer.C
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timerC = nil
}

func reply(job *saveJob, err error) {
	if job.reply != nil {
		job.reply <- err
	}
}

// exec runs fn on the session goroutine.
func (s *Session) exec(ctx context.Context, fn func()) error {
	select {
	case s.cmds <- fn:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) await(ctx context.Context, ch <-chan error) error {
	select {
	case err := <-ch:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Set edits one field locally and restarts the quiet period.
func (s *Session) Set(step, field string, value any) error {
	errc := make(chan error, 1)
	err := s.exec(context.Background(), func() {
		switch {
		case s.submitted || s.submitting:
			errc <- ErrSubmitted
		case s.loading:
			errc <- ErrLoading
		case s.mode().FieldsDisabled():
			errc <- ErrFieldsDisabled
		default:
			if _, ok := s.schema.Step(step); !ok {
				errc <- fmt.Errorf("draft: %s has no step %q", s.cfg.Kind, step)
				return
			}
			if s.steps[step] == nil {
				s.steps[step] = forms.Values{}
			}
			s.steps[step][field] = value
			s.dirty = true
			s.restartTimer()
			errc <- nil
		}
	})
	if err != nil {
		return err
	}
	return <-errc
}

// Next validates the current step, saves immediately with reason
// next-step-<n> and advances. A failed save is logged and the step still
// advances; only validation errors keep the form on the current step.
func (s *Session) Next(ctx context.Context) error {
	errc := make(chan error, 1)
	job := &saveJob{advance: true, reply: make(chan error, 1)}
	err := s.exec(ctx, func() {
		switch {
		case s.submitted || s.submitting:
			errc <- ErrSubmitted
			return
		case s.loading:
			errc <- ErrLoading
			return
		case s.mode().FieldsDisabled():
			errc <- ErrFieldsDisabled
			return
		}
		name := forms.StepName(s.step)
		if err := s.schema.ValidateStep(name, s.steps[name]); err != nil {
			errc <- err
			return
		}
		job.reason = fmt.Sprintf("next-step-%d", s.step+1)
		s.stopTimer()
		s.queue = append(s.queue, job)
		errc <- nil
	})
	if err != nil {
		return err
	}
	if err := <-errc; err != nil {
		return err
	}
	if err := s.await(ctx, job.reply); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !errors.Is(err, ErrStale) {
			s.log.Debug("next-step save failed", zap.Error(err))
		}
	}
	return nil
}

// Back moves to the previous step without saving.
func (s *Session) Back() error {
	return s.exec(context.Background(), func() {
		if s.step > 0 {
			s.step--
		}
	})
}

// Submit validates the whole form, waits for any running save and performs
// the final save carrying package and payment. Validation errors are
// returned directly; a failed final save is reported in the outcome.
func (s *Session) Submit(ctx context.Context) (SubmitOutcome, error) {
	errc := make(chan error, 1)
	job := &saveJob{reason: ReasonFinalSubmit, submit: true, reply: make(chan error, 1)}
	err := s.exec(ctx, func() {
		switch {
		case s.submitted || s.submitting:
			errc <- ErrSubmitted
			return
		case s.loading:
			errc <- ErrLoading
			return
		case s.mode().FieldsDisabled():
			errc <- ErrFieldsDisabled
			return
		}
		if err := s.schema.Validate(s.steps); err != nil {
			errc <- err
			return
		}
		s.submitting = true
		s.autosave = false
		s.stopTimer()
		s.queue = append(s.queue, job)
		errc <- nil
	})
	if err != nil {
		return SubmitOutcome{}, err
	}
	if err := <-errc; err != nil {
		return SubmitOutcome{}, err
	}

	// submitting is cleared by the loop once the job replies, so a caller
	// that stops waiting leaves the form locked until the save lands.
	saveErr := s.await(ctx, job.reply)

	var ticket string
	_ = s.exec(context.Background(), func() { ticket = s.ticket })
	if saveErr == nil {
		if err := kvstore.Clear(ctx, s.store,
			kvstore.KeyDraftTicketID, kvstore.KeyEditingTicketID,
			kvstore.KeySelectedPackage, kvstore.KeyPaymentDetails,
		); err != nil {
			s.log.Warn("clear draft state", zap.Error(err))
		}
	} else {
		s.log.Warn("final submit failed; draft kept server-side", zap.String("ticket_id", ticket), zap.Error(saveErr))
	}
	return SubmitOutcome{
		TicketID: ticket,
		Redirect: s.cfg.SubmitRedirect,
		After:    s.cfg.RedirectAfter,
		Err:      saveErr,
	}, nil
}

// Reload replaces the form with the server copy of ticketID. Any save that
// started before the reload is discarded when it completes.
func (s *Session) Reload(ctx context.Context, ticketID string) error {
	replyc := make(chan error, 1)
	err := s.exec(ctx, func() {
		s.gen++
		gen := s.gen
		s.loading = true
		s.dirty = false
		s.autosave = false
		s.stopTimer()
		for _, job := range s.queue {
			if job.submit {
				s.submitting = false
			}
			reply(job, ErrStale)
		}
		s.queue = nil

		go func() {
			reg, err := s.backend.Get(s.ctx, ticketID)
			s.loads <- loadResult{gen: gen, ticketID: ticketID, reg: reg, err: err, reply: replyc}
		}()
	})
	if err != nil {
		return err
	}
	return s.await(ctx, replyc)
}

// SetFlags updates the fill-request flags, which changes the viewer mode.
func (s *Session) SetFlags(f viewmode.Flags) error {
	return s.exec(context.Background(), func() { s.flags = f })
}

func (s *Session) FieldsDisabled() bool {
	return s.Snapshot().Mode.FieldsDisabled()
}

func (s *Session) TicketID() string { return s.Snapshot().TicketID }

func (s *Session) Snapshot() Snapshot {
	snapc := make(chan Snapshot, 1)
	err := s.exec(context.Background(), func() {
		snapc <- Snapshot{
			TicketID:  s.ticket,
			Step:      s.step,
			Steps:     cloneSteps(s.steps),
			Mode:      s.mode(),
			Dirty:     s.dirty,
			Saving:    s.inflight,
			Loading:   s.loading,
			Submitted: s.submitted,
		}
	})
	if err != nil {
		return Snapshot{}
	}
	return <-snapc
}

// Close flushes pending edits once and stops the session.
func (s *Session) Close() error {
	var err error
	s.once.Do(func() {
		waiter := make(chan struct{})
		err = s.exec(context.Background(), func() {
			s.closing = true
			s.closeWaiter = waiter
			s.stopTimer()
			if s.dirty && !s.submitted && !s.submitting && !s.mode().FieldsDisabled() {
				s.queue = append(s.queue, &saveJob{reason: ReasonClose})
			}
		})
		if err != nil {
			return
		}
		<-waiter
		<-s.done
	})
	return err
}

func cloneSteps(in forms.Steps) forms.Steps {
	out := make(forms.Steps, len(in))
	for step, vals := range in {
		cp := make(forms.Values, len(vals))
		for k, v := range vals {
			cp[k] = v
		}
		out[step] = cp
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
