package repository

import (
	"context"

	"oneasy-portal/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const PaymentCollection = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(PaymentCollection)}
}

func (r *PaymentRepository) Insert(ctx context.Context, p *models.Payment) error {
	_, err := r.col.InsertOne(ctx, p)
	return mapErr(err)
}

func (r *PaymentRepository) FindByID(ctx context.Context, paymentID string) (*models.Payment, error) {
	var p models.Payment
	if err := r.col.FindOne(ctx, bson.M{"payment_id": paymentID}).Decode(&p); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}
