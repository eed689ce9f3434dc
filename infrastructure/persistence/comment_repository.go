package persistence

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/sync/errgroup"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

type CommentRepository struct {
	comments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) repository.IComment {
	return &CommentRepository{comments: db.Collection(collComments)}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	now := time.Now().UTC()
	comment.ID = bson.NewObjectID()
	comment.CreatedAt, comment.UpdatedAt = now, now
	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("mongo: create comment failed")
		return mapErr("create comment", err)
	}
	return nil
}

func (r *CommentRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Comment, error) {
	var comment model.Comment
	if err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment); err != nil {
		return model.Comment{}, mapErr("find comment", err)
	}
	return comment, nil
}

func (r *CommentRepository) ListByVideo(ctx context.Context, video bson.ObjectID, offset, limit int64) ([]model.Comment, int64, error) {
	filter := bson.M{"video": video}
	opts := options.Find().SetSort(newestFirst).SetSkip(offset).SetLimit(limit)

	comments := []model.Comment{}
	var total int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := r.comments.Find(gctx, filter, opts)
		if err != nil {
			return mapErr("list comments", err)
		}
		return mapErr("decode comments", cursor.All(gctx, &comments))
	})
	g.Go(func() error {
		n, err := r.comments.CountDocuments(gctx, filter)
		total = n
		return mapErr("count comments", err)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *CommentRepository) UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Comment, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var comment model.Comment
	if err := r.comments.FindOneAndUpdate(ctx, ownedFilter(id, owner), update, opts).Decode(&comment); err != nil {
		return model.Comment{}, mapErr("update comment", err)
	}
	return comment, nil
}

func (r *CommentRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.comments.DeleteOne(ctx, ownedFilter(id, owner))
	if err != nil {
		return mapErr("delete comment", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}
