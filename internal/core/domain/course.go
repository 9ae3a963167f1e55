package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to exactly one bootcamp and one creating account.
// Tuition feeds the bootcamp's averageCost aggregate.
type Course struct {
	ID                   primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title                string             `json:"title" bson:"title"`
	Description          string             `json:"description" bson:"description"`
	Weeks                int                `json:"weeks" bson:"weeks"`
	Tuition              int                `json:"tuition" bson:"tuition"`
	MinimumSkill         string             `json:"minimumSkill" bson:"minimumSkill"`
	ScholarshipAvailable bool               `json:"scholarshipAvailable" bson:"scholarshipAvailable"`
	Bootcamp             primitive.ObjectID `json:"bootcamp" bson:"bootcamp"`
	User                 primitive.ObjectID `json:"user" bson:"user"`
	CreatedAt            time.Time          `json:"createdAt" bson:"createdAt"`

	// BootcampDetail is only populated when relation expansion is requested.
	BootcampDetail *Bootcamp `json:"bootcampDetail,omitempty" bson:"-"`
}
