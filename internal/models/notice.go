package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Notice is an announcement shown on client dashboards. A nil ClientID makes it global.
type Notice struct {
	ID          bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string         `bson:"title" json:"title"`
	Description string         `bson:"description" json:"description"`
	Link        string         `bson:"link,omitempty" json:"link,omitempty"`
	ClientID    *bson.ObjectID `bson:"client_id" json:"clientId"`
	CreatedBy   bson.ObjectID  `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time      `bson:"updated_at" json:"updatedAt"`
}
