package seed

import (
	"context"

	"sociopedia/internal/core/post"
	"sociopedia/internal/core/user"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore is the slice of the user store the seed loader needs.
type UserStore interface {
	FindByEmails(ctx context.Context, emails []string) ([]*user.User, error)
	InsertMany(ctx context.Context, users []*user.User) error
}

// PostStore is the slice of the post store the seed loader needs.
type PostStore interface {
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*post.Post, error)
	InsertMany(ctx context.Context, posts []*post.Post) error
}

// Locker guards seeding across replicas. When acquired is false another
// instance holds the lock and release is nil.
type Locker interface {
	Acquire(ctx context.Context) (release func(context.Context) error, acquired bool, err error)
}
