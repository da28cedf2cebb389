package models

import (
	"time"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FillRequest is the side record keyed by (kind, ticket) telling who was asked
// to complete a form.
type FillRequest struct {
	Kind           forms.Kind `bson:"kind" json:"kind"`
	TicketID       string     `bson:"ticket_id" json:"ticketId"`
	viewmode.Flags `bson:",inline"`
	UpdatedBy      bson.ObjectID `bson:"updated_by" json:"updatedBy"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}
