package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/usecase"
)

func TestCommentList_RequiresVideo(t *testing.T) {
	comments := new(MockCommentRepository)
	videos := new(MockVideoRepository)
	uc := usecase.NewCommentUsecase(comments, videos, new(MockUserRepository), nil)
	id := bson.NewObjectID()
	videos.On("GetById", mock.Anything, id).Return(model.Video{}, repository.ErrNotFound)

	_, err := uc.List(context.Background(), id.Hex(), dto.ReqPage{})

	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	comments.AssertNotCalled(t, "ListByVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCommentList_ClampsLimit(t *testing.T) {
	comments := new(MockCommentRepository)
	videos := new(MockVideoRepository)
	users := new(MockUserRepository)
	uc := usecase.NewCommentUsecase(comments, videos, users, nil)
	id := bson.NewObjectID()
	videos.On("GetById", mock.Anything, id).Return(model.Video{ID: id}, nil)
	comments.On("ListByVideo", mock.Anything, id, int64(200), int64(100)).Return([]model.Comment{}, int64(250), nil)
	users.On("GetSummaries", mock.Anything, mock.Anything).Return(map[bson.ObjectID]model.Owner{}, nil)

	res, err := uc.List(context.Background(), id.Hex(), dto.ReqPage{Page: 3, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, dto.Page{Total: 250, Page: 3, Limit: 100, TotalPages: 3}, res.Page)
	assert.NotNil(t, res.Comments)
}

func TestCommentAdd_NotifiesVideoOwner(t *testing.T) {
	comments := new(MockCommentRepository)
	videos := new(MockVideoRepository)
	users := new(MockUserRepository)
	events := new(MockEventPublisher)
	uc := usecase.NewCommentUsecase(comments, videos, users, events)
	actor, owner, videoID := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()
	videos.On("GetById", mock.Anything, videoID).Return(model.Video{ID: videoID, OwnerID: owner}, nil)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.Content == "nice" && c.OwnerID == actor && c.VideoID == videoID
	})).Return(nil)
	comments.On("GetById", mock.Anything, mock.Anything).Return(model.Comment{}, repository.ErrNotFound)
	users.On("GetSummaries", mock.Anything, mock.Anything).Return(map[bson.ObjectID]model.Owner{}, nil)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.ActivityEvent) bool {
		return e.Type == model.ActivityCommentCreated && e.TargetUserID == owner.Hex() && e.Attributes["videoId"] == videoID.Hex()
	})).Return(nil)

	got, err := uc.Add(context.Background(), actor, videoID.Hex(), " nice ")

	require.NoError(t, err)
	assert.Equal(t, "nice", got.Content)
	events.AssertExpectations(t)
}

func TestCommentAdd_EmptyContent(t *testing.T) {
	comments := new(MockCommentRepository)
	uc := usecase.NewCommentUsecase(comments, new(MockVideoRepository), new(MockUserRepository), nil)

	_, err := uc.Add(context.Background(), bson.NewObjectID(), bson.NewObjectID().Hex(), "")

	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	comments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCommentDelete_NonOwner(t *testing.T) {
	comments := new(MockCommentRepository)
	uc := usecase.NewCommentUsecase(comments, new(MockVideoRepository), new(MockUserRepository), nil)
	id := bson.NewObjectID()
	comments.On("DeleteOwned", mock.Anything, id, mock.Anything).Return(repository.ErrNotFound)

	err := uc.Delete(context.Background(), bson.NewObjectID(), id.Hex())

	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	assert.Equal(t, "Comment not found or unauthorized", apperror.From(err).Message)
}
