package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

const (
	msgVideoNotFound     = "Video not found"
	msgVideoNotFoundAuth = "Video not found or unauthorized"
)

type IVideoUsecase interface {
	List(ctx context.Context, req dto.ReqVideoList) (dto.ResVideoList, error)
	Publish(ctx context.Context, actor bson.ObjectID, req dto.ReqVideoPublish) (model.Video, error)
	Get(ctx context.Context, videoID string) (model.Video, error)
	Update(ctx context.Context, actor bson.ObjectID, videoID string, req dto.ReqVideoUpdate) (model.Video, error)
	Delete(ctx context.Context, actor bson.ObjectID, videoID string) error
	TogglePublish(ctx context.Context, actor bson.ObjectID, videoID string) (model.Video, error)
	IncrementViews(ctx context.Context, videoID string) (model.Video, error)
}

type VideoUsecase struct {
	videos repository.IVideo
	users  repository.IUser
	media  repository.IMedia
	cache  repository.IVideoCache
	events repository.IEventPublisher
}

func NewVideoUsecase(
	videos repository.IVideo,
	users repository.IUser,
	media repository.IMedia,
	cache repository.IVideoCache,
	events repository.IEventPublisher,
) IVideoUsecase {
	return &VideoUsecase{videos: videos, users: users, media: media, cache: cache, events: events}
}

func (u *VideoUsecase) List(ctx context.Context, req dto.ReqVideoList) (dto.ResVideoList, error) {
	page, limit, offset := pageWindow(req.Page, req.Limit)
	filter := model.VideoFilter{
		Query:  strings.TrimSpace(req.Query),
		SortBy: "createdAt",
		Offset: offset,
		Limit:  limit,
	}
	if req.SortBy != "" {
		if !model.ValidVideoSort(req.SortBy) {
			return dto.ResVideoList{}, apperror.BadRequest("Invalid sortBy").
				WithDetails("sortBy must be one of createdAt, updatedAt, views, likes, title, duration")
		}
		filter.SortBy = req.SortBy
	}
	switch req.SortType {
	case "", "desc":
	case "asc":
		filter.Asc = true
	default:
		return dto.ResVideoList{}, apperror.BadRequest("Invalid sortType").WithDetails("sortType must be asc or desc")
	}
	if req.UserID != "" {
		owner, err := parseID(req.UserID, "user")
		if err != nil {
			return dto.ResVideoList{}, err
		}
		filter.OwnerID = &owner
	}

	videos, total, err := u.videos.List(ctx, filter)
	if err != nil {
		return dto.ResVideoList{}, internal(err)
	}
	if err := u.attachOwners(ctx, videos); err != nil {
		return dto.ResVideoList{}, err
	}
	return dto.ResVideoList{Videos: videos, Page: newPage(total, page, limit)}, nil
}

func (u *VideoUsecase) Publish(ctx context.Context, actor bson.ObjectID, req dto.ReqVideoPublish) (model.Video, error) {
	defer removeSpooled(ctx, req.VideoPath, req.ThumbnailPath)

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Video{}, apperror.BadRequest("Title is required")
	}
	if req.VideoPath == "" {
		return model.Video{}, apperror.BadRequest("Video file is required")
	}
	if req.ThumbnailPath == "" {
		return model.Video{}, apperror.BadRequest("Thumbnail is required")
	}

	videoAsset, err := u.media.Upload(ctx, req.VideoPath, model.MediaKindVideo)
	if err != nil {
		return model.Video{}, apperror.Internal("Error uploading video").Wrap(err)
	}
	thumbAsset, err := u.media.Upload(ctx, req.ThumbnailPath, model.MediaKindImage)
	if err != nil {
		discard(ctx, u.media, &videoAsset)
		return model.Video{}, apperror.Internal("Error uploading thumbnail").Wrap(err)
	}

	video := model.Video{
		OwnerID:     actor,
		VideoFile:   videoAsset.URL,
		VideoFileID: videoAsset.PublicID,
		Thumbnail:   thumbAsset.URL,
		ThumbnailID: thumbAsset.PublicID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Duration:    videoAsset.Duration,
		IsPublished: true,
	}
	if err := u.videos.Create(ctx, &video); err != nil {
		discard(ctx, u.media, &videoAsset)
		discard(ctx, u.media, &thumbAsset)
		return model.Video{}, apperror.Internal("Error while publishing video").Wrap(err)
	}

	created, err := u.videos.GetById(ctx, video.ID)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Re-fetch published video failed")
		created = video
	}
	created.Owner = ownerOf(ctx, u.users, actor)
	emit(ctx, u.events, model.ActivityEvent{
		Type:       model.ActivityVideoPublished,
		ActorID:    actor.Hex(),
		SubjectID:  created.ID.Hex(),
		Attributes: map[string]string{"title": created.Title},
	})
	return created, nil
}

// Get reads through the cache. The owner summary is always resolved live.
func (u *VideoUsecase) Get(ctx context.Context, videoID string) (model.Video, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return model.Video{}, err
	}
	var video model.Video
	if cached, ok := u.cache.Get(ctx, id); ok {
		video = *cached
	} else {
		video, err = u.videos.GetById(ctx, id)
		if err != nil {
			return model.Video{}, notFoundOr(err, msgVideoNotFound)
		}
		u.cache.Set(ctx, video)
	}
	video.Owner = ownerOf(ctx, u.users, video.OwnerID)
	return video, nil
}

// Update confirms ownership before uploading a replacement thumbnail so a
// non-owner never causes an upload.
func (u *VideoUsecase) Update(ctx context.Context, actor bson.ObjectID, videoID string, req dto.ReqVideoUpdate) (model.Video, error) {
	defer removeSpooled(ctx, req.ThumbnailPath)

	id, err := parseID(videoID, "video")
	if err != nil {
		return model.Video{}, err
	}
	var changes model.VideoChanges
	if req.Title != nil {
		if t := strings.TrimSpace(*req.Title); t != "" {
			changes.Title = &t
		}
	}
	if req.Description != nil {
		if d := strings.TrimSpace(*req.Description); d != "" {
			changes.Description = &d
		}
	}
	if changes.Empty() && req.ThumbnailPath == "" {
		return model.Video{}, apperror.BadRequest("At least one of title, description or thumbnail is required")
	}

	current, err := u.videos.GetOwned(ctx, id, actor)
	if err != nil {
		return model.Video{}, notFoundOr(err, msgVideoNotFoundAuth)
	}

	if req.ThumbnailPath != "" {
		asset, err := u.media.Upload(ctx, req.ThumbnailPath, model.MediaKindImage)
		if err != nil {
			return model.Video{}, apperror.Internal("Error while uploading thumbnail").Wrap(err)
		}
		changes.Thumbnail = &asset
	}

	updated, err := u.videos.UpdateOwned(ctx, id, actor, changes)
	if err != nil {
		discard(ctx, u.media, changes.Thumbnail)
		return model.Video{}, notFoundOr(err, msgVideoNotFoundAuth)
	}
	if changes.Thumbnail != nil && current.ThumbnailID != "" {
		discard(ctx, u.media, &model.MediaAsset{PublicID: current.ThumbnailID, ResourceType: model.MediaKindImage})
	}
	u.cache.Invalidate(ctx, id)
	updated.Owner = ownerOf(ctx, u.users, updated.OwnerID)
	return updated, nil
}

// Delete removes the remote assets before the row. A media failure aborts
// with the row intact.
func (u *VideoUsecase) Delete(ctx context.Context, actor bson.ObjectID, videoID string) error {
	id, err := parseID(videoID, "video")
	if err != nil {
		return err
	}
	video, err := u.videos.GetOwned(ctx, id, actor)
	if err != nil {
		return notFoundOr(err, msgVideoNotFoundAuth)
	}
	if err := u.media.Delete(ctx, video.VideoFileID, model.MediaKindVideo); err != nil {
		return apperror.Internal("Error deleting video file").Wrap(err)
	}
	if err := u.media.Delete(ctx, video.ThumbnailID, model.MediaKindImage); err != nil {
		return apperror.Internal("Error deleting thumbnail").Wrap(err)
	}
	if err := u.videos.DeleteOwned(ctx, id, actor); err != nil {
		return notFoundOr(err, msgVideoNotFoundAuth)
	}
	u.cache.Invalidate(ctx, id)
	return nil
}

func (u *VideoUsecase) TogglePublish(ctx context.Context, actor bson.ObjectID, videoID string) (model.Video, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return model.Video{}, err
	}
	video, err := u.videos.TogglePublishOwned(ctx, id, actor)
	if err != nil {
		return model.Video{}, notFoundOr(err, msgVideoNotFoundAuth)
	}
	u.cache.Invalidate(ctx, id)
	video.Owner = ownerOf(ctx, u.users, video.OwnerID)
	return video, nil
}

func (u *VideoUsecase) IncrementViews(ctx context.Context, videoID string) (model.Video, error) {
	id, err := parseID(videoID, "video")
	if err != nil {
		return model.Video{}, err
	}
	video, err := u.videos.IncrementViews(ctx, id)
	if err != nil {
		return model.Video{}, notFoundOr(err, msgVideoNotFound)
	}
	u.cache.Invalidate(ctx, id)
	video.Owner = ownerOf(ctx, u.users, video.OwnerID)
	return video, nil
}

func (u *VideoUsecase) attachOwners(ctx context.Context, videos []model.Video) error {
	ids := make([]bson.ObjectID, len(videos))
	for i, v := range videos {
		ids[i] = v.OwnerID
	}
	owners, err := u.users.GetSummaries(ctx, ids)
	if err != nil {
		return internal(err)
	}
	for i := range videos {
		if o, ok := owners[videos[i].OwnerID]; ok {
			videos[i].Owner = &o
		}
	}
	return nil
}
