package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bootcamp is the parent resource. AverageCost and AverageRating are
// denormalised aggregates derived from courses and reviews; they are never
// written by clients, only by the aggregate maintainer, and are absent
// (nil) while the bootcamp has no children.
type Bootcamp struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name          string             `json:"name" bson:"name"`
	Description   string             `json:"description" bson:"description"`
	Website       string             `json:"website,omitempty" bson:"website,omitempty"`
	Phone         string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Email         string             `json:"email,omitempty" bson:"email,omitempty"`
	Address       string             `json:"address,omitempty" bson:"address,omitempty"`
	Careers       []string           `json:"careers" bson:"careers"`
	Housing       bool               `json:"housing" bson:"housing"`
	JobAssistance bool               `json:"jobAssistance" bson:"jobAssistance"`
	JobGuarantee  bool               `json:"jobGuarantee" bson:"jobGuarantee"`
	AcceptGi      bool               `json:"acceptGi" bson:"acceptGi"`
	AverageCost   *int               `json:"averageCost,omitempty" bson:"averageCost,omitempty"`
	AverageRating *float64           `json:"averageRating,omitempty" bson:"averageRating,omitempty"`
	User          primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`

	// Courses is only populated when relation expansion is requested.
	Courses []Course `json:"courses,omitempty" bson:"-"`
}
