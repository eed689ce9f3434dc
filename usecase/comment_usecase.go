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

const msgCommentNotFoundAuth = "Comment not found or unauthorized"

type ICommentUsecase interface {
	List(ctx context.Context, videoID string, req dto.ReqPage) (dto.ResCommentList, error)
	Add(ctx context.Context, actor bson.ObjectID, videoID, content string) (model.Comment, error)
	Update(ctx context.Context, actor bson.ObjectID, commentID, content string) (model.Comment, error)
	Delete(ctx context.Context, actor bson.ObjectID, commentID string) error
}

type CommentUsecase struct {
	comments repository.IComment
	videos   repository.IVideo
	users    repository.IUser
	events   repository.IEventPublisher
}

func NewCommentUsecase(comments repository.IComment, videos repository.IVideo, users repository.IUser, events repository.IEventPublisher) ICommentUsecase {
	return &CommentUsecase{comments: comments, videos: videos, users: users, events: events}
}

func (u *CommentUsecase) List(ctx context.Context, videoID string, req dto.ReqPage) (dto.ResCommentList, error) {
	video, err := parseID(videoID, "video")
	if err != nil {
		return dto.ResCommentList{}, err
	}
	if _, err := u.videos.GetById(ctx, video); err != nil {
		return dto.ResCommentList{}, notFoundOr(err, msgVideoNotFound)
	}
	page, limit, offset := pageWindow(req.Page, req.Limit)
	comments, total, err := u.comments.ListByVideo(ctx, video, offset, limit)
	if err != nil {
		return dto.ResCommentList{}, internal(err)
	}
	ids := make([]bson.ObjectID, len(comments))
	for i, c := range comments {
		ids[i] = c.OwnerID
	}
	owners, err := u.users.GetSummaries(ctx, ids)
	if err != nil {
		return dto.ResCommentList{}, internal(err)
	}
	for i := range comments {
		if o, ok := owners[comments[i].OwnerID]; ok {
			comments[i].Owner = &o
		}
	}
	return dto.ResCommentList{Comments: comments, Page: newPage(total, page, limit)}, nil
}

func (u *CommentUsecase) Add(ctx context.Context, actor bson.ObjectID, videoID, content string) (model.Comment, error) {
	videoOID, err := parseID(videoID, "video")
	if err != nil {
		return model.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, apperror.BadRequest("Content is required")
	}
	video, err := u.videos.GetById(ctx, videoOID)
	if err != nil {
		return model.Comment{}, notFoundOr(err, msgVideoNotFound)
	}

	comment := model.Comment{OwnerID: actor, VideoID: videoOID, Content: content}
	if err := u.comments.Create(ctx, &comment); err != nil {
		return model.Comment{}, apperror.Internal("Error while adding comment").Wrap(err)
	}
	created, err := u.comments.GetById(ctx, comment.ID)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Re-fetch created comment failed")
		created = comment
	}
	created.Owner = ownerOf(ctx, u.users, actor)
	emit(ctx, u.events, model.ActivityEvent{
		Type:         model.ActivityCommentCreated,
		ActorID:      actor.Hex(),
		SubjectID:    created.ID.Hex(),
		TargetUserID: video.OwnerID.Hex(),
		Attributes:   map[string]string{"videoId": videoOID.Hex()},
	})
	return created, nil
}

func (u *CommentUsecase) Update(ctx context.Context, actor bson.ObjectID, commentID, content string) (model.Comment, error) {
	id, err := parseID(commentID, "comment")
	if err != nil {
		return model.Comment{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Comment{}, apperror.BadRequest("Content is required")
	}
	comment, err := u.comments.UpdateContentOwned(ctx, id, actor, content)
	if err != nil {
		return model.Comment{}, notFoundOr(err, msgCommentNotFoundAuth)
	}
	comment.Owner = ownerOf(ctx, u.users, comment.OwnerID)
	return comment, nil
}

func (u *CommentUsecase) Delete(ctx context.Context, actor bson.ObjectID, commentID string) error {
	id, err := parseID(commentID, "comment")
	if err != nil {
		return err
	}
	if err := u.comments.DeleteOwned(ctx, id, actor); err != nil {
		return notFoundOr(err, msgCommentNotFoundAuth)
	}
	return nil
}
