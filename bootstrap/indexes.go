package bootstrap

import (
	"context"
	"fmt"

	"oneasy-portal/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureIndexes creates the unique and lookup indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		repository.RegistrationCollection: {
			{
				Keys:    bson.D{{Key: "ticket_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_ticket_id"),
			},
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "client_id", Value: 1}},
				Options: options.Index().SetName("kind_client"),
			},
		},
		repository.UserCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_email"),
			},
			{
				Keys:    bson.D{{Key: "phone", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_phone"),
			},
		},
		repository.FillRequestCollection: {
			{
				Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "ticket_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_kind_ticket"),
			},
		},
		repository.PaymentCollection: {
			{
				Keys:    bson.D{{Key: "payment_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_payment_id"),
			},
		},
	}
	for coll, idx := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("ensure indexes on %s: %w", coll, err)
		}
	}
	return nil
}
