package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

type LikeRepository struct {
	db    *mongo.Database
	likes *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) repository.ILike {
	return &LikeRepository{db: db, likes: db.Collection(collLikes)}
}

type likeSubject struct {
	Owner bson.ObjectID `bson:"owner"`
	Likes int64         `bson:"likes"`
}

// Toggle deletes the like row if present, inserts it otherwise, and moves the
// subject counter by the same step, all inside one transaction. Requires a
// replica set or sharded cluster.
func (r *LikeRepository) Toggle(ctx context.Context, kind model.LikeKind, subject, actor bson.ObjectID) (model.LikeToggle, error) {
	collName, counted := subjectCollection(kind)
	if collName == "" {
		return model.LikeToggle{}, fmt.Errorf("unknown like kind %q", kind)
	}
	subjects := r.db.Collection(collName)

	sess, err := r.db.Client().StartSession()
	if err != nil {
		return model.LikeToggle{}, fmt.Errorf("start session: %w", err)
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(txCtx context.Context) (interface{}, error) {
		var current likeSubject
		err := subjects.FindOne(txCtx, bson.M{"_id": subject}, options.FindOne().SetProjection(bson.M{"owner": 1, "likes": 1})).Decode(&current)
		if err != nil {
			return nil, mapErr("find like subject", err)
		}

		out := model.LikeToggle{SubjectOwner: current.Owner}
		res, err := r.likes.DeleteOne(txCtx, likeFilter(kind, subject, actor))
		if err != nil {
			return nil, mapErr("delete like", err)
		}
		step := int64(-1)
		if res.DeletedCount == 0 {
			like := model.Like{
				ID:        bson.NewObjectID(),
				Kind:      kind,
				Subject:   subject,
				LikedBy:   actor,
				CreatedAt: time.Now().UTC(),
			}
			if _, err := r.likes.InsertOne(txCtx, like); err != nil {
				return nil, mapErr("insert like", err)
			}
			out.IsLiked = true
			step = 1
		}
		if !counted {
			return out, nil
		}

		var updated likeSubject
		opts := options.FindOneAndUpdate().
			SetReturnDocument(options.After).
			SetProjection(bson.M{"owner": 1, "likes": 1})
		err = subjects.FindOneAndUpdate(txCtx, bson.M{"_id": subject}, bson.M{"$inc": bson.M{"likes": step}}, opts).Decode(&updated)
		if err != nil {
			return nil, mapErr("update like counter", err)
		}
		out.Likes = updated.Likes
		return out, nil
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.FromContext(ctx).WithField("error", err).WithField("kind", kind).Error("mongo: toggle like failed")
		}
		return model.LikeToggle{}, err
	}
	return result.(model.LikeToggle), nil
}

func (r *LikeRepository) LikedSubjects(ctx context.Context, kind model.LikeKind, actor bson.ObjectID, subjects []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	out := make(map[bson.ObjectID]bool, len(subjects))
	if len(subjects) == 0 {
		return out, nil
	}
	filter := bson.M{"kind": kind, "likedBy": actor, "subject": bson.M{"$in": uniqueIDs(subjects)}}
	cursor, err := r.likes.Find(ctx, filter, options.Find().SetProjection(bson.M{"subject": 1}))
	if err != nil {
		return nil, mapErr("find liked subjects", err)
	}
	var likes []model.Like
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, mapErr("decode liked subjects", err)
	}
	for _, l := range likes {
		out[l.Subject] = true
	}
	return out, nil
}

func (r *LikeRepository) ListByActor(ctx context.Context, kind model.LikeKind, actor bson.ObjectID) ([]model.Like, error) {
	cursor, err := r.likes.Find(ctx, bson.M{"kind": kind, "likedBy": actor}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mapErr("list likes", err)
	}
	likes := []model.Like{}
	if err := cursor.All(ctx, &likes); err != nil {
		return nil, mapErr("decode likes", err)
	}
	return likes, nil
}
