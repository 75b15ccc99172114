package user

import (
	"context"
	"errors"
	"time"

	"sociopedia/internal/core/user"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrInvalidID  = errors.New("invalid user id")
	ErrEmailTaken = errors.New("email already registered")
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindByEmails(ctx context.Context, emails []string) ([]*user.User, error)
	InsertMany(ctx context.Context, users []*user.User) error
	AddFriend(ctx context.Context, userID, friendID string) error
	RemoveFriend(ctx context.Context, userID, friendID string) error
}

type RegisterInput struct {
	FirstName   string
	LastName    string
	Email       string
	Password    string
	PicturePath string
	Friends     []string
	Location    string
	Occupation  string
}

// DTOها برای UseCase
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	User      *UserDTO `json:"user"`
}

type UserDTO struct {
	ID            string    `json:"_id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	PicturePath   string    `json:"picturePath"`
	Friends       []string  `json:"friends"`
	Location      string    `json:"location"`
	Occupation    string    `json:"occupation"`
	ViewedProfile int       `json:"viewedProfile"`
	Impressions   int       `json:"impressions"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type FriendDTO struct {
	ID          string `json:"_id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Occupation  string `json:"occupation"`
	Location    string `json:"location"`
	PicturePath string `json:"picturePath"`
}
