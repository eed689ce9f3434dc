package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

// IVideo mutations are owner scoped: the filter is {_id, owner} so a caller
// that does not own the video gets ErrNotFound.
type IVideo interface {
	Create(ctx context.Context, video *model.Video) error
	GetById(ctx context.Context, id bson.ObjectID) (model.Video, error)
	GetOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error)
	GetPreviews(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.VideoPreview, error)
	List(ctx context.Context, filter model.VideoFilter) ([]model.Video, int64, error)
	UpdateOwned(ctx context.Context, id, owner bson.ObjectID, changes model.VideoChanges) (model.Video, error)
	DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error
	TogglePublishOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error)
	IncrementViews(ctx context.Context, id bson.ObjectID) (model.Video, error)
}

// IVideoCache is a best-effort read cache. Implementations swallow backend errors.
type IVideoCache interface {
	Get(ctx context.Context, id bson.ObjectID) (*model.Video, bool)
	Set(ctx context.Context, video model.Video)
	Invalidate(ctx context.Context, id bson.ObjectID)
}

// IMedia stores binaries on the external host.
type IMedia interface {
	// Upload removes localPath whether or not the upload succeeds.
	Upload(ctx context.Context, localPath string, kind model.MediaKind) (model.MediaAsset, error)
	Delete(ctx context.Context, publicID string, kind model.MediaKind) error
}
