package models

import (
	"time"

	"oneasy-portal/internal/viewmode"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	Phone        string        `bson:"phone" json:"phone"`
	Role         viewmode.Role `bson:"role" json:"role"`
	PasswordHash string        `bson:"password_hash,omitempty" json:"-"`
	CreatedBy    bson.ObjectID `bson:"created_by,omitempty" json:"createdBy,omitempty"`
	CreatedAt    time.Time     `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    time.Time     `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}
