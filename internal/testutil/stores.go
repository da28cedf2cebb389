// Package testutil provides in-memory repositories with the same contracts as
// the MongoDB ones, for service, handler and client tests.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/repository"
	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Registrations struct {
	mu      sync.Mutex
	byKey   map[string]models.Registration
	Inserts int
	Updates int
}

func NewRegistrations() *Registrations {
	return &Registrations{byKey: map[string]models.Registration{}}
}

func regKey(kind forms.Kind, ticket string) string { return string(kind) + "/" + ticket }

func (r *Registrations) Insert(_ context.Context, reg *models.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byKey {
		if existing.TicketID == reg.TicketID {
			return repository.ErrDuplicate
		}
	}
	if reg.ID.IsZero() {
		reg.ID = bson.NewObjectID()
	}
	r.byKey[regKey(reg.Kind, reg.TicketID)] = cloneReg(*reg)
	r.Inserts++
	return nil
}

func (r *Registrations) FindByTicket(_ context.Context, kind forms.Kind, ticketID string) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reg, ok := r.byKey[regKey(kind, ticketID)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := cloneReg(reg)
	return &out, nil
}

// Update supports the "$set" keys the service writes, including dotted
// "fields.<name>" paths.
func (r *Registrations) Update(_ context.Context, kind forms.Kind, ticketID string, set bson.M) (*models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := regKey(kind, ticketID)
	reg, ok := r.byKey[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	reg = cloneReg(reg)
	for k, v := range set {
		switch {
		case strings.HasPrefix(k, "fields."):
			reg.Fields[strings.TrimPrefix(k, "fields.")] = v
		case k == "step":
			reg.Step = v.(int)
		case k == "updated_at":
			reg.UpdatedAt = v.(time.Time)
		case k == "last_reason":
			reg.LastReason = v.(string)
		case k == "package":
			reg.Package = v.(*models.Package)
		case k == "payment":
			reg.Payment = v.(*models.Payment)
		case k == "filled_by_admin":
			reg.FilledByAdmin = v.(bool)
		case k == "status":
			reg.Status = v.(models.RegistrationStatus)
		case k == "submitted_at":
			t := v.(time.Time)
			reg.SubmittedAt = &t
		}
	}
	r.byKey[key] = reg
	r.Updates++
	out := cloneReg(reg)
	return &out, nil
}

func (r *Registrations) List(_ context.Context, kind forms.Kind, clientID bson.ObjectID) ([]models.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range r.byKey {
		if reg.Kind != kind || (!clientID.IsZero() && reg.ClientID != clientID) {
			continue
		}
		out = append(out, cloneReg(reg))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// Count returns how many records exist.
func (r *Registrations) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byKey)
}

func cloneReg(reg models.Registration) models.Registration {
	fields := bson.M{}
	for k, v := range reg.Fields {
		fields[k] = v
	}
	reg.Fields = fields
	return reg
}

type FillRequests struct {
	mu    sync.Mutex
	flags map[string]models.FillRequest
}

func NewFillRequests() *FillRequests {
	return &FillRequests{flags: map[string]models.FillRequest{}}
}

func (f *FillRequests) Find(_ context.Context, kind forms.Kind, ticketID string) (*models.FillRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fr, ok := f.flags[regKey(kind, ticketID)]
	if !ok {
		fr = models.FillRequest{Kind: kind, TicketID: ticketID}
	}
	return &fr, nil
}

func (f *FillRequests) SetFlag(_ context.Context, kind forms.Kind, ticketID, flag string, active bool, by bson.ObjectID) (*models.FillRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey(kind, ticketID)
	fr, ok := f.flags[key]
	if !ok {
		fr = models.FillRequest{Kind: kind, TicketID: ticketID}
	}
	switch flag {
	case "team_fill":
		fr.TeamFill = active
	case "client_fill_requested":
		fr.ClientFillRequested = active
	}
	fr.UpdatedBy = by
	fr.UpdatedAt = time.Now().UTC()
	f.flags[key] = fr
	return &fr, nil
}

type Users struct {
	mu    sync.Mutex
	users []models.User
}

func NewUsers() *Users { return &Users{} }

func (u *Users) Insert(_ context.Context, user *models.User) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, existing := range u.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	u.users = append(u.users, *user)
	return nil
}

func (u *Users) FindByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	return u.find(func(x models.User) bool { return x.ID == id })
}

func (u *Users) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return u.find(func(x models.User) bool { return x.Email == email })
}

func (u *Users) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return u.find(func(x models.User) bool { return x.Phone == phone })
}

func (u *Users) ListByRole(_ context.Context, role viewmode.Role) ([]models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := []models.User{}
	for _, x := range u.users {
		if role == "" || x.Role == role {
			out = append(out, x)
		}
	}
	return out, nil
}

func (u *Users) find(match func(models.User) bool) (*models.User, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	for _, x := range u.users {
		if match(x) {
			found := x
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

type Notices struct {
	mu      sync.Mutex
	notices []models.Notice
}

func NewNotices() *Notices { return &Notices{} }

func (n *Notices) Insert(_ context.Context, notice *models.Notice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if notice.ID.IsZero() {
		notice.ID = bson.NewObjectID()
	}
	n.notices = append(n.notices, *notice)
	return nil
}

func (n *Notices) FindByID(_ context.Context, id bson.ObjectID) (*models.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, x := range n.notices {
		if x.ID == id {
			found := x
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (n *Notices) Update(_ context.Context, id bson.ObjectID, set bson.M) (*models.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, x := range n.notices {
		if x.ID != id {
			continue
		}
		if v, ok := set["title"].(string); ok {
			x.Title = v
		}
		if v, ok := set["description"].(string); ok {
			x.Description = v
		}
		if v, ok := set["link"].(string); ok {
			x.Link = v
		}
		if v, ok := set["client_id"]; ok {
			x.ClientID, _ = v.(*bson.ObjectID)
		}
		if v, ok := set["updated_at"].(time.Time); ok {
			x.UpdatedAt = v
		}
		n.notices[i] = x
		return &x, nil
	}
	return nil, repository.ErrNotFound
}

func (n *Notices) Delete(_ context.Context, id bson.ObjectID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, x := range n.notices {
		if x.ID == id {
			n.notices = append(n.notices[:i], n.notices[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (n *Notices) ListAll(_ context.Context) ([]models.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notice{}, n.notices...), nil
}

func (n *Notices) ListForClient(_ context.Context, clientID bson.ObjectID) ([]models.Notice, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := []models.Notice{}
	for _, x := range n.notices {
		if x.ClientID == nil || *x.ClientID == clientID {
			out = append(out, x)
		}
	}
	return out, nil
}

type Organizations struct {
	mu        sync.Mutex
	orgs      []models.Organization
	directors []models.Director
}

func NewOrganizations() *Organizations { return &Organizations{} }

func (o *Organizations) InsertOrganization(_ context.Context, org *models.Organization) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if org.ID.IsZero() {
		org.ID = bson.NewObjectID()
	}
	o.orgs = append(o.orgs, *org)
	return nil
}

func (o *Organizations) InsertDirector(_ context.Context, d *models.Director) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = bson.NewObjectID()
	}
	o.directors = append(o.directors, *d)
	return nil
}

func (o *Organizations) ListOrganizations(_ context.Context) ([]models.Organization, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.Organization{}, o.orgs...), nil
}

func (o *Organizations) ListDirectors(_ context.Context) ([]models.Director, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]models.Director{}, o.directors...), nil
}

type Payments struct {
	mu       sync.Mutex
	payments map[string]models.Payment
}

func NewPayments() *Payments { return &Payments{payments: map[string]models.Payment{}} }

func (p *Payments) Insert(_ context.Context, pay *models.Payment) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payments[pay.PaymentID] = *pay
	return nil
}

func (p *Payments) FindByID(_ context.Context, id string) (*models.Payment, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	pay, ok := p.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &pay, nil
}
