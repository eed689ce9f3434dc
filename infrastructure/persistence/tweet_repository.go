package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

type TweetRepository struct {
	tweets *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) repository.ITweet {
	return &TweetRepository{tweets: db.Collection(collTweets)}
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	now := time.Now().UTC()
	tweet.ID = bson.NewObjectID()
	tweet.CreatedAt, tweet.UpdatedAt = now, now
	if _, err := r.tweets.InsertOne(ctx, tweet); err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("mongo: create tweet failed")
		return mapErr("create tweet", err)
	}
	return nil
}

func (r *TweetRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Tweet, error) {
	var tweet model.Tweet
	if err := r.tweets.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet); err != nil {
		return model.Tweet{}, mapErr("find tweet", err)
	}
	return tweet, nil
}

// List returns every tweet, or the tweets of owner when set, newest first.
func (r *TweetRepository) List(ctx context.Context, owner *bson.ObjectID) ([]model.Tweet, error) {
	filter := bson.M{}
	if owner != nil {
		filter["owner"] = *owner
	}
	cursor, err := r.tweets.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mapErr("list tweets", err)
	}
	tweets := []model.Tweet{}
	if err := cursor.All(ctx, &tweets); err != nil {
		return nil, mapErr("decode tweets", err)
	}
	return tweets, nil
}

func (r *TweetRepository) UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Tweet, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var tweet model.Tweet
	if err := r.tweets.FindOneAndUpdate(ctx, ownedFilter(id, owner), update, opts).Decode(&tweet); err != nil {
		return model.Tweet{}, mapErr("update tweet", err)
	}
	return tweet, nil
}

func (r *TweetRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.tweets.DeleteOne(ctx, ownedFilter(id, owner))
	if err != nil {
		return mapErr("delete tweet", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
