package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppUser struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password,omitempty" bson:"passwordHash"`
	RoleName  string             `json:"role" bson:"role"`
	Branch    string             `json:"branch,omitempty" bson:"branch,omitempty"`
	Zone      string             `json:"zone,omitempty" bson:"zone,omitempty"`
	Active    bool               `json:"active" bson:"active"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
