package seedapp

import (
	"context"
	"errors"
	"fmt"

	"sociopedia/internal/core/post"
	"sociopedia/internal/core/user"
	seedPort "sociopedia/internal/ports/seed"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrQuery wraps a failed existence check.
	ErrQuery = errors.New("seed: existence check failed")
	// ErrInsert wraps a failed bulk insert, duplicate-key conflicts included.
	ErrInsert = errors.New("seed: bulk insert failed")
)

// Loader inserts the seed users and posts that are missing from the store.
//
// The existence check and the insert are separate calls; a concurrent writer
// can still slip a colliding record in between, which surfaces as ErrInsert.
type Loader struct {
	Users     seedPort.UserStore
	Posts     seedPort.PostStore
	SeedUsers []*user.User
	SeedPosts []*post.Post
	Logger    *zap.Logger
}

func NewLoader(
	users seedPort.UserStore,
	posts seedPort.PostStore,
	seedUsers []*user.User,
	seedPosts []*post.Post,
	logger *zap.Logger,
) *Loader {
	return &Loader{
		Users:     users,
		Posts:     posts,
		SeedUsers: seedUsers,
		SeedPosts: seedPosts,
		Logger:    logger.With(zap.String("component", "seed")),
	}
}

// Run seeds users first, then posts. It stops at the first error.
func (l *Loader) Run(ctx context.Context) error {
	if err := l.loadUsers(ctx); err != nil {
		return err
	}
	return l.loadPosts(ctx)
}

func (l *Loader) loadUsers(ctx context.Context) error {
	emails := make([]string, 0, len(l.SeedUsers))
	for _, u := range l.SeedUsers {
		emails = append(emails, u.Email)
	}

	existing, err := l.Users.FindByEmails(ctx, emails)
	if err != nil {
		return fmt.Errorf("%w: find users by email: %w", ErrQuery, err)
	}
	present := make(map[string]struct{}, len(existing))
	for _, u := range existing {
		present[u.Email] = struct{}{}
	}

	var newUsers []*user.User
	for _, u := range l.SeedUsers {
		if _, ok := present[u.Email]; !ok {
			newUsers = append(newUsers, u)
		}
	}

	if len(newUsers) == 0 {
		l.Logger.Info("No new users to insert", zap.Int("seed", len(l.SeedUsers)))
		return nil
	}
	if err := l.Users.InsertMany(ctx, newUsers); err != nil {
		return fmt.Errorf("%w: insert %d users: %w", ErrInsert, len(newUsers), err)
	}
	l.Logger.Info("✅ Inserted new users",
		zap.Int("inserted", len(newUsers)),
		zap.Int("skipped", len(l.SeedUsers)-len(newUsers)))
	return nil
}

func (l *Loader) loadPosts(ctx context.Context) error {
	ids := make([]primitive.ObjectID, 0, len(l.SeedPosts))
	for _, p := range l.SeedPosts {
		ids = append(ids, p.ID)
	}

	existing, err := l.Posts.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("%w: find posts by id: %w", ErrQuery, err)
	}
	present := make(map[primitive.ObjectID]struct{}, len(existing))
	for _, p := range existing {
		present[p.ID] = struct{}{}
	}

	var newPosts []*post.Post
	for _, p := range l.SeedPosts {
		if _, ok := present[p.ID]; !ok {
			newPosts = append(newPosts, p)
		}
	}

	if len(newPosts) == 0 {
		l.Logger.Info("No new posts to insert", zap.Int("seed", len(l.SeedPosts)))
		return nil
	}
	if err := l.Posts.InsertMany(ctx, newPosts); err != nil {
		return fmt.Errorf("%w: insert %d posts: %w", ErrInsert, len(newPosts), err)
	}
	l.Logger.Info("✅ Inserted new posts",
		zap.Int("inserted", len(newPosts)),
		zap.Int("skipped", len(l.SeedPosts)-len(newPosts)))
	return nil
}
