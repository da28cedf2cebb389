package repository

import (
	"context"
	"time"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const FillRequestCollection = "fill_requests"

type FillRequestRepository struct {
	col *mongo.Collection
}

func NewFillRequestRepository(db *mongo.Database) *FillRequestRepository {
	return &FillRequestRepository{col: db.Collection(FillRequestCollection)}
}

// Find returns the flags of a ticket. A ticket nobody toggled yet has no record
// and reads as all-false.
func (r *FillRequestRepository) Find(ctx context.Context, kind forms.Kind, ticketID string) (*models.FillRequest, error) {
	var fr models.FillRequest
	err := r.col.FindOne(ctx, bson.M{"kind": kind, "ticket_id": ticketID}).Decode(&fr)
	if err != nil {
		if mapErr(err) == ErrNotFound {
			return &models.FillRequest{Kind: kind, TicketID: ticketID}, nil
		}
		return nil, err
	}
	return &fr, nil
}

// SetFlag upserts one flag ("team_fill" or "client_fill_requested").
func (r *FillRequestRepository) SetFlag(ctx context.Context, kind forms.Kind, ticketID, flag string, active bool, by bson.ObjectID) (*models.FillRequest, error) {
	var fr models.FillRequest
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"kind": kind, "ticket_id": ticketID},
		bson.M{
			"$set": bson.M{
				flag:         active,
				"updated_by": by,
				"updated_at": time.Now().UTC(),
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&fr)
	if err != nil {
		return nil, mapErr(err)
	}
	return &fr, nil
}
