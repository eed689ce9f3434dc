package persistence

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

type SubscriptionRepository struct {
	subscriptions *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) repository.ISubscription {
	return &SubscriptionRepository{subscriptions: db.Collection(collSubscriptions)}
}

func subscriptionFilter(subscriber, channel bson.ObjectID) bson.M {
	return bson.M{"subscriber": subscriber, "channel": channel}
}

// Toggle removes the row when present and inserts it otherwise. A concurrent
// insert of the same pair loses to the unique index and reports subscribed.
func (r *SubscriptionRepository) Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	res, err := r.subscriptions.DeleteOne(ctx, subscriptionFilter(subscriber, channel))
	if err != nil {
		return false, mapErr("delete subscription", err)
	}
	if res.DeletedCount > 0 {
		return false, nil
	}
	sub := model.Subscription{
		ID:         bson.NewObjectID(),
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := r.subscriptions.InsertOne(ctx, sub); err != nil {
		err = mapErr("insert subscription", err)
		if errors.Is(err, repository.ErrDuplicate) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *SubscriptionRepository) Exists(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	n, err := r.subscriptions.CountDocuments(ctx, subscriptionFilter(subscriber, channel), options.Count().SetLimit(1))
	if err != nil {
		return false, mapErr("find subscription", err)
	}
	return n > 0, nil
}

func (r *SubscriptionRepository) ListByChannel(ctx context.Context, channel bson.ObjectID) ([]model.Subscription, error) {
	return r.list(ctx, bson.M{"channel": channel})
}

func (r *SubscriptionRepository) ListBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]model.Subscription, error) {
	return r.list(ctx, bson.M{"subscriber": subscriber})
}

func (r *SubscriptionRepository) CountByChannel(ctx context.Context, channel bson.ObjectID) (int64, error) {
	n, err := r.subscriptions.CountDocuments(ctx, bson.M{"channel": channel})
	return n, mapErr("count subscribers", err)
}

func (r *SubscriptionRepository) CountBySubscriber(ctx context.Context, subscriber bson.ObjectID) (int64, error) {
	n, err := r.subscriptions.CountDocuments(ctx, bson.M{"subscriber": subscriber})
	return n, mapErr("count subscriptions", err)
}

func (r *SubscriptionRepository) list(ctx context.Context, filter bson.M) ([]model.Subscription, error) {
	cursor, err := r.subscriptions.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mapErr("list subscriptions", err)
	}
	subs := []model.Subscription{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, mapErr("decode subscriptions", err)
	}
	return subs, nil
}
