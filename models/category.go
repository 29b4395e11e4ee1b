package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Category struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string        `bson:"name" json:"name"`
	Description string        `bson:"description" json:"description"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// CategoryWithCount is a Category enriched with the number of ads referencing it.
type CategoryWithCount struct {
	Category `bson:",inline"`
	AdCount  int64 `bson:"adCount" json:"adCount"`
}

// CategoryRef is the hydrated form of an ad's category reference. Only the name is resolved.
type CategoryRef struct {
	Id   bson.ObjectID `json:"id"`
	Name string        `json:"name"`
}
