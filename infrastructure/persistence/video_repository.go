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

var previewProjection = bson.M{"_id": 1, "title": 1, "thumbnail": 1, "views": 1, "createdAt": 1}

type VideoRepository struct {
	videos *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) repository.IVideo {
	return &VideoRepository{videos: db.Collection(collVideos)}
}

func (r *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	now := time.Now().UTC()
	video.ID = bson.NewObjectID()
	video.CreatedAt, video.UpdatedAt = now, now
	if _, err := r.videos.InsertOne(ctx, video); err != nil {
		logger.FromContext(ctx).WithField("error", err).Error("mongo: create video failed")
		return mapErr("create video", err)
	}
	return nil
}

func (r *VideoRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Video, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *VideoRepository) GetOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error) {
	return r.findOne(ctx, ownedFilter(id, owner))
}

func (r *VideoRepository) GetPreviews(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.VideoPreview, error) {
	out := make(map[bson.ObjectID]model.VideoPreview, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := r.videos.Find(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs(ids)}}, options.Find().SetProjection(previewProjection))
	if err != nil {
		return nil, mapErr("find video previews", err)
	}
	var previews []model.VideoPreview
	if err := cursor.All(ctx, &previews); err != nil {
		return nil, mapErr("decode video previews", err)
	}
	for _, p := range previews {
		out[p.ID] = p
	}
	return out, nil
}

// List runs the page query and the count concurrently.
func (r *VideoRepository) List(ctx context.Context, f model.VideoFilter) ([]model.Video, int64, error) {
	filter := videoListFilter(f)
	opts := options.Find().
		SetSort(videoListSort(f)).
		SetSkip(f.Offset).
		SetLimit(f.Limit)

	var (
		videos []model.Video
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cursor, err := r.videos.Find(gctx, filter, opts)
		if err != nil {
			return mapErr("list videos", err)
		}
		return mapErr("decode videos", cursor.All(gctx, &videos))
	})
	g.Go(func() error {
		n, err := r.videos.CountDocuments(gctx, filter)
		total = n
		return mapErr("count videos", err)
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, total, nil
}

func (r *VideoRepository) UpdateOwned(ctx context.Context, id, owner bson.ObjectID, changes model.VideoChanges) (model.Video, error) {
	return r.findOneAndUpdate(ctx, ownedFilter(id, owner), videoChangesUpdate(changes, time.Now().UTC()))
}

func (r *VideoRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	res, err := r.videos.DeleteOne(ctx, ownedFilter(id, owner))
	if err != nil {
		return mapErr("delete video", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// TogglePublishOwned flips isPublished atomically with a pipeline update.
func (r *VideoRepository) TogglePublishOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"isPublished": bson.M{"$not": bson.A{"$isPublished"}},
			"updatedAt":   time.Now().UTC(),
		}}},
	}
	return r.findOneAndUpdate(ctx, ownedFilter(id, owner), pipeline)
}

func (r *VideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) (model.Video, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
}

func (r *VideoRepository) findOne(ctx context.Context, filter bson.M) (model.Video, error) {
	var video model.Video
	if err := r.videos.FindOne(ctx, filter).Decode(&video); err != nil {
		return model.Video{}, mapErr("find video", err)
	}
	return video, nil
}

func (r *VideoRepository) findOneAndUpdate(ctx context.Context, filter bson.M, update interface{}) (model.Video, error) {
	var video model.Video
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.videos.FindOneAndUpdate(ctx, filter, update, opts).Decode(&video); err != nil {
		return model.Video{}, mapErr("update video", err)
	}
	return video, nil
}
