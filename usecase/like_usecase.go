package usecase

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

type ILikeUsecase interface {
	Toggle(ctx context.Context, actor bson.ObjectID, kind model.LikeKind, subjectID string) (model.LikeToggle, error)
	LikedVideos(ctx context.Context, actor bson.ObjectID) ([]model.LikedVideo, error)
}

type LikeUsecase struct {
	likes  repository.ILike
	videos repository.IVideo
	cache  repository.IVideoCache
	events repository.IEventPublisher
}

func NewLikeUsecase(likes repository.ILike, videos repository.IVideo, cache repository.IVideoCache, events repository.IEventPublisher) ILikeUsecase {
	return &LikeUsecase{likes: likes, videos: videos, cache: cache, events: events}
}

var likeSubjectNotFound = map[model.LikeKind]string{
	model.LikeKindVideo:   "Video not found",
	model.LikeKindComment: "Comment not found",
	model.LikeKindTweet:   "Tweet not found",
}

func (u *LikeUsecase) Toggle(ctx context.Context, actor bson.ObjectID, kind model.LikeKind, subjectID string) (model.LikeToggle, error) {
	msg, ok := likeSubjectNotFound[kind]
	if !ok {
		return model.LikeToggle{}, apperror.BadRequest("Unsupported like kind")
	}
	subject, err := parseID(subjectID, string(kind))
	if err != nil {
		return model.LikeToggle{}, err
	}
	res, err := u.likes.Toggle(ctx, kind, subject, actor)
	if err != nil {
		return model.LikeToggle{}, notFoundOr(err, msg)
	}
	if kind == model.LikeKindVideo {
		u.cache.Invalidate(ctx, subject)
	}
	emit(ctx, u.events, model.ActivityEvent{
		Type:         model.ActivityLikeToggled,
		ActorID:      actor.Hex(),
		SubjectID:    subject.Hex(),
		TargetUserID: res.SubjectOwner.Hex(),
		Attributes:   map[string]string{"kind": string(kind), "isLiked": strconv.FormatBool(res.IsLiked)},
	})
	return res, nil
}

// LikedVideos lists the actor's liked videos newest first. Likes whose video
// has since been deleted are skipped.
func (u *LikeUsecase) LikedVideos(ctx context.Context, actor bson.ObjectID) ([]model.LikedVideo, error) {
	likes, err := u.likes.ListByActor(ctx, model.LikeKindVideo, actor)
	if err != nil {
		return nil, internal(err)
	}
	ids := make([]bson.ObjectID, len(likes))
	for i, l := range likes {
		ids[i] = l.Subject
	}
	previews, err := u.videos.GetPreviews(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]model.LikedVideo, 0, len(likes))
	for _, l := range likes {
		p, ok := previews[l.Subject]
		if !ok {
			continue
		}
		out = append(out, model.LikedVideo{ID: l.ID, Video: p, CreatedAt: l.CreatedAt})
	}
	return out, nil
}
