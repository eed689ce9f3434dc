package persistence

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"vidsocial/infrastructure/logger"
)

type indexSpec struct {
	collection string
	model      mongo.IndexModel
}

func indexSpecs() []indexSpec {
	unique := options.Index().SetUnique(true)
	return []indexSpec{
		{collUsers, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique}},
		{collUsers, mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{collVideos, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{collTweets, mongo.IndexModel{Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{collComments, mongo.IndexModel{Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{collLikes, mongo.IndexModel{
			Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "subject", Value: 1}, {Key: "likedBy", Value: 1}},
			Options: unique,
		}},
		{collLikes, mongo.IndexModel{Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "kind", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{collSubscriptions, mongo.IndexModel{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: unique,
		}},
		{collSubscriptions, mongo.IndexModel{Keys: bson.D{{Key: "channel", Value: 1}}}},
	}
}

// EnsureIndexes creates the indexes the repositories rely on. The unique
// indexes on likes and subscriptions keep toggles single-row under concurrency.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, spec := range indexSpecs() {
		name, err := db.Collection(spec.collection).Indexes().CreateOne(ctx, spec.model)
		if err != nil {
			return fmt.Errorf("create index on %s: %w", spec.collection, err)
		}
		logger.GetLogger().WithField("collection", spec.collection).WithField("index", name).Debug("Index ensured")
	}
	return nil
}
