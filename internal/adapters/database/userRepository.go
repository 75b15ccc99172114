package database

import (
	"context"
	"errors"
	"time"

	"sociopedia/internal/core/user"
	userPort "sociopedia/internal/ports/user"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const usersCollection = "users"

// UserRepositoryMongo پیاده‌سازی UserRepository برای MongoDB
type UserRepositoryMongo struct {
	coll *mongo.Collection
}

func NewUserRepositoryMongo(db *mongo.Database) *UserRepositoryMongo {
	return &UserRepositoryMongo{coll: db.Collection(usersCollection)}
}

func (repo *UserRepositoryMongo) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if _, err := repo.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, userPort.ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryMongo) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, userPort.ErrInvalidID
	}
	return repo.findOne(ctx, bson.M{"_id": oid})
}

// FindByIDs ignores ids that are not valid ObjectIDs.
func (repo *UserRepositoryMongo) FindByIDs(ctx context.Context, ids []string) ([]*user.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	if len(oids) == 0 {
		return []*user.User{}, nil
	}
	return repo.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
}

func (repo *UserRepositoryMongo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

func (repo *UserRepositoryMongo) FindByEmails(ctx context.Context, emails []string) ([]*user.User, error) {
	if len(emails) == 0 {
		return []*user.User{}, nil
	}
	return repo.find(ctx, bson.M{"email": bson.M{"$in": emails}})
}

// InsertMany writes users in order with a single insertMany call.
func (repo *UserRepositoryMongo) InsertMany(ctx context.Context, users []*user.User) error {
	if len(users) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, u)
	}
	_, err := repo.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (repo *UserRepositoryMongo) AddFriend(ctx context.Context, userID, friendID string) error {
	return repo.updateFriends(ctx, userID, bson.M{
		"$addToSet": bson.M{"friends": friendID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (repo *UserRepositoryMongo) RemoveFriend(ctx context.Context, userID, friendID string) error {
	return repo.updateFriends(ctx, userID, bson.M{
		"$pull": bson.M{"friends": friendID},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (repo *UserRepositoryMongo) updateFriends(ctx context.Context, userID string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return userPort.ErrInvalidID
	}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return userPort.ErrNotFound
	}
	return nil
}

func (repo *UserRepositoryMongo) findOne(ctx context.Context, filter bson.M) (*user.User, error) {
	var u user.User
	if err := repo.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, userPort.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (repo *UserRepositoryMongo) find(ctx context.Context, filter bson.M) ([]*user.User, error) {
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	users := []*user.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
