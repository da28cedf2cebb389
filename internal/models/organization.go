package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Organization struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string        `bson:"user_id" json:"user_id"`
	Name      string        `bson:"name" json:"name"`
	Type      string        `bson:"type" json:"type"`
	GSTIN     string        `bson:"gstin,omitempty" json:"gstin,omitempty"`
	City      string        `bson:"city,omitempty" json:"city,omitempty"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}

type Director struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	OrganizationUserID string        `bson:"organization_user_id" json:"organizationUserId"`
	Name               string        `bson:"name" json:"name"`
	DIN                string        `bson:"din,omitempty" json:"din,omitempty"`
	Email              string        `bson:"email,omitempty" json:"email,omitempty"`
	Phone              string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Designation        string        `bson:"designation,omitempty" json:"designation,omitempty"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
}
