package post

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post keeps a copy of the author's name, location and picture so the feed
// can be rendered without joining users.
type Post struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"userId"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Location        string             `bson:"location"`
	Description     string             `bson:"description"`
	PicturePath     string             `bson:"picturePath"`
	UserPicturePath string             `bson:"userPicturePath"`
	Likes           map[string]bool    `bson:"likes"`
	Comments        []string           `bson:"comments"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func (p *Post) LikedBy(userID string) bool {
	return p.Likes[userID]
}
