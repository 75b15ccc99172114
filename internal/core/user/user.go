package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	FirstName     string             `bson:"firstName"`
	LastName      string             `bson:"lastName"`
	Email         string             `bson:"email"` // unique
	Password      string             `bson:"password"`
	PicturePath   string             `bson:"picturePath"`
	Friends       []string           `bson:"friends"` // hex ids of other users
	Location      string             `bson:"location"`
	Occupation    string             `bson:"occupation"`
	ViewedProfile int                `bson:"viewedProfile"`
	Impressions   int                `bson:"impressions"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

// HasFriend reports whether id is in the user's friend list.
func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}
