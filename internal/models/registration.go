package models

import (
	"time"

	"oneasy-portal/internal/forms"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type RegistrationStatus string

const (
	StatusDraft     RegistrationStatus = "draft"
	StatusSubmitted RegistrationStatus = "submitted"
)

// Registration is one draft or submitted registration, addressed by its ticket id.
// Fields holds the flat field record; the client regroups it into steps.
type Registration struct {
	ID            bson.ObjectID      `bson:"_id,omitempty" json:"-"`
	TicketID      string             `bson:"ticket_id" json:"ticketId"`
	Kind          forms.Kind         `bson:"kind" json:"kind"`
	Status        RegistrationStatus `bson:"status" json:"status"`
	ClientID      bson.ObjectID      `bson:"client_id" json:"clientId"`
	CreatedBy     bson.ObjectID      `bson:"created_by" json:"createdBy"`
	FilledByAdmin bool               `bson:"filled_by_admin" json:"filledByAdmin"`
	Step          int                `bson:"step" json:"step"`
	Fields        bson.M             `bson:"fields" json:"fields"`
	Package       *Package           `bson:"package,omitempty" json:"package,omitempty"`
	Payment       *Payment           `bson:"payment,omitempty" json:"payment,omitempty"`
	LastReason    string             `bson:"last_reason,omitempty" json:"lastReason,omitempty"`
	SubmittedAt   *time.Time         `bson:"submitted_at,omitempty" json:"submittedAt,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}
