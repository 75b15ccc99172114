package database

import (
	"context"
	"errors"
	"time"

	"sociopedia/internal/core/post"
	postPort "sociopedia/internal/ports/post"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollection = "posts"

// PostRepositoryMongo پیاده‌سازی PostRepository برای MongoDB
type PostRepositoryMongo struct {
	coll *mongo.Collection
}

func NewPostRepositoryMongo(db *mongo.Database) *PostRepositoryMongo {
	return &PostRepositoryMongo{coll: db.Collection(postsCollection)}
}

func (repo *PostRepositoryMongo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if _, err := repo.coll.InsertOne(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (repo *PostRepositoryMongo) FindByID(ctx context.Context, id string) (*post.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, postPort.ErrInvalidID
	}
	var p post.Post
	if err := repo.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, postPort.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryMongo) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*post.Post, error) {
	if len(ids) == 0 {
		return []*post.Post{}, nil
	}
	return repo.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindAll returns every post, newest first.
func (repo *PostRepositoryMongo) FindAll(ctx context.Context) ([]*post.Post, error) {
	return repo.find(ctx, bson.M{}, newestFirst())
}

func (repo *PostRepositoryMongo) FindByUserID(ctx context.Context, userID string) ([]*post.Post, error) {
	return repo.find(ctx, bson.M{"userId": userID}, newestFirst())
}

// InsertMany writes posts in order with a single insertMany call.
func (repo *PostRepositoryMongo) InsertMany(ctx context.Context, posts []*post.Post) error {
	if len(posts) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, p)
	}
	_, err := repo.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

func (repo *PostRepositoryMongo) SetLike(ctx context.Context, id, userID string, liked bool) (*post.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, postPort.ErrInvalidID
	}

	field := "likes." + userID
	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{field: true, "updatedAt": now}}
	if !liked {
		update = bson.M{
			"$unset": bson.M{field: ""},
			"$set":   bson.M{"updatedAt": now},
		}
	}

	var p post.Post
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := repo.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, postPort.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryMongo) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*post.Post, error) {
	cursor, err := repo.coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	posts := []*post.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
