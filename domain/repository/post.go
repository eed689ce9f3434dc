package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

type ITweet interface {
	Create(ctx context.Context, tweet *model.Tweet) error
	GetById(ctx context.Context, id bson.ObjectID) (model.Tweet, error)
	List(ctx context.Context, owner *bson.ObjectID) ([]model.Tweet, error)
	UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Tweet, error)
	DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error
}

type IComment interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetById(ctx context.Context, id bson.ObjectID) (model.Comment, error)
	ListByVideo(ctx context.Context, video bson.ObjectID, offset, limit int64) ([]model.Comment, int64, error)
	UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Comment, error)
	DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error
}
