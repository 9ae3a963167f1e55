package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review belongs to exactly one bootcamp and one authoring account. At most
// one review may exist per (user, bootcamp) pair; the storage layer enforces
// this with a unique compound index. Rating feeds the bootcamp's
// averageRating aggregate.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Text      string             `json:"text" bson:"text"`
	Rating    int                `json:"rating" bson:"rating"`
	Bootcamp  primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
