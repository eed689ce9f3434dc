package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

type ILike interface {
	// Toggle flips the like of actor on subject and, for counted kinds, moves
	// the subject's like counter in the same transaction. A missing subject
	// yields ErrNotFound and leaves nothing written.
	Toggle(ctx context.Context, kind model.LikeKind, subject, actor bson.ObjectID) (model.LikeToggle, error)
	// LikedSubjects reports which of subjects actor currently likes.
	LikedSubjects(ctx context.Context, kind model.LikeKind, actor bson.ObjectID, subjects []bson.ObjectID) (map[bson.ObjectID]bool, error)
	ListByActor(ctx context.Context, kind model.LikeKind, actor bson.ObjectID) ([]model.Like, error)
}

type ISubscription interface {
	// Toggle returns true when the subscription exists after the call.
	Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error)
	Exists(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error)
	ListByChannel(ctx context.Context, channel bson.ObjectID) ([]model.Subscription, error)
	ListBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]model.Subscription, error)
	CountByChannel(ctx context.Context, channel bson.ObjectID) (int64, error)
	CountBySubscriber(ctx context.Context, subscriber bson.ObjectID) (int64, error)
}

// IEventPublisher delivers activity events to an outbound sink.
type IEventPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}
