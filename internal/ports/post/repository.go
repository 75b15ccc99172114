package post

import (
	"context"
	"errors"
	"time"

	"sociopedia/internal/core/post"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound  = errors.New("post not found")
	ErrInvalidID = errors.New("invalid post id")
)

// PostRepository پورت برای ذخیره‌سازی و بازیابی پست‌ها
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id string) (*post.Post, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*post.Post, error)
	FindAll(ctx context.Context) ([]*post.Post, error)
	FindByUserID(ctx context.Context, userID string) ([]*post.Post, error)
	InsertMany(ctx context.Context, posts []*post.Post) error
	// SetLike adds or removes userID from the post's likes and returns the updated post.
	SetLike(ctx context.Context, id, userID string, liked bool) (*post.Post, error)
}

type CreatePostInput struct {
	UserID      string
	Description string
	PicturePath string
}

// DTOها برای UseCase
type PostDTO struct {
	ID              string          `json:"_id"`
	UserID          string          `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Location        string          `json:"location"`
	Description     string          `json:"description"`
	PicturePath     string          `json:"picturePath"`
	UserPicturePath string          `json:"userPicturePath"`
	Likes           map[string]bool `json:"likes"`
	Comments        []string        `json:"comments"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
