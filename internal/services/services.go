package services

import (
	"context"
	"errors"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"
	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrLocked             = errors.New("form is locked for this viewer")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPaymentRequired    = errors.New("package and payment are required before submitting")
	ErrBadRequest         = errors.New("bad request")
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID bson.ObjectID
	Role   viewmode.Role
}

func (a Actor) IsStaff() bool { return a.Role.IsStaff() }

type RegistrationStore interface {
	Insert(ctx context.Context, reg *models.Registration) error
	FindByTicket(ctx context.Context, kind forms.Kind, ticketID string) (*models.Registration, error)
	Update(ctx context.Context, kind forms.Kind, ticketID string, set bson.M) (*models.Registration, error)
	List(ctx context.Context, kind forms.Kind, clientID bson.ObjectID) ([]models.Registration, error)
}

type FillRequestStore interface {
	Find(ctx context.Context, kind forms.Kind, ticketID string) (*models.FillRequest, error)
	SetFlag(ctx context.Context, kind forms.Kind, ticketID, flag string, active bool, by bson.ObjectID) (*models.FillRequest, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	ListByRole(ctx context.Context, role viewmode.Role) ([]models.User, error)
}

type NoticeStore interface {
	Insert(ctx context.Context, n *models.Notice) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Notice, error)
	Update(ctx context.Context, id bson.ObjectID, set bson.M) (*models.Notice, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ListAll(ctx context.Context) ([]models.Notice, error)
	ListForClient(ctx context.Context, clientID bson.ObjectID) ([]models.Notice, error)
}

type OrganizationStore interface {
	InsertOrganization(ctx context.Context, o *models.Organization) error
	InsertDirector(ctx context.Context, d *models.Director) error
	ListOrganizations(ctx context.Context) ([]models.Organization, error)
	ListDirectors(ctx context.Context) ([]models.Director, error)
}

type PaymentStore interface {
	Insert(ctx context.Context, p *models.Payment) error
	FindByID(ctx context.Context, paymentID string) (*models.Payment, error)
}
