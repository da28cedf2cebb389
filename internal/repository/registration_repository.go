package repository

import (
	"context"

	"oneasy-portal/internal/forms"
	"oneasy-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const RegistrationCollection = "registrations"

type RegistrationRepository struct {
	col *mongo.Collection
}

func NewRegistrationRepository(db *mongo.Database) *RegistrationRepository {
	return &RegistrationRepository{col: db.Collection(RegistrationCollection)}
}

func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	if reg.ID.IsZero() {
		reg.ID = bson.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, reg)
	return mapErr(err)
}

func (r *RegistrationRepository) FindByTicket(ctx context.Context, kind forms.Kind, ticketID string) (*models.Registration, error) {
	var reg models.Registration
	err := r.col.FindOne(ctx, bson.M{"kind": kind, "ticket_id": ticketID}).Decode(&reg)
	if err != nil {
		return nil, mapErr(err)
	}
	return &reg, nil
}

// Update applies set to an existing record and returns it after the write. It
// never inserts.
func (r *RegistrationRepository) Update(ctx context.Context, kind forms.Kind, ticketID string, set bson.M) (*models.Registration, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var reg models.Registration
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"kind": kind, "ticket_id": ticketID},
		bson.M{"$set": set},
		opts,
	).Decode(&reg)
	if err != nil {
		return nil, mapErr(err)
	}
	return &reg, nil
}

// List returns records of one kind, newest first. A zero clientID lists all clients.
func (r *RegistrationRepository) List(ctx context.Context, kind forms.Kind, clientID bson.ObjectID) ([]models.Registration, error) {
	filter := bson.M{"kind": kind}
	if !clientID.IsZero() {
		filter["client_id"] = clientID
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	regs := []models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}
