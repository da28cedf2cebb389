package models

import (
	"time"

	"oneasy-portal/internal/forms"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Package is a priced service tier a client picks before filling a form.
type Package struct {
	ID       string     `bson:"id" json:"id" yaml:"id"`
	Kind     forms.Kind `bson:"kind" json:"kind" yaml:"kind"`
	Name     string     `bson:"name" json:"name" yaml:"name"`
	Price    int64      `bson:"price" json:"price" yaml:"price"`
	Features []string   `bson:"features,omitempty" json:"features,omitempty" yaml:"features"`
}

type PaymentStatus string

const PaymentPaid PaymentStatus = "paid"

// Payment confirms a package purchase. No gateway is involved; the record is
// the confirmation.
type Payment struct {
	PaymentID string        `bson:"payment_id" json:"paymentId"`
	PackageID string        `bson:"package_id" json:"packageId"`
	Amount    int64         `bson:"amount" json:"amount"`
	Status    PaymentStatus `bson:"status" json:"status"`
	UserID    bson.ObjectID `bson:"user_id" json:"userId"`
	PaidAt    time.Time     `bson:"paid_at" json:"paidAt"`
}
