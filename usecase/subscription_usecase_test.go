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
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/usecase"
)

func TestSubscriptionToggle_Self(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	uc := usecase.NewSubscriptionUsecase(subs, new(MockUserRepository), nil)
	actor := bson.NewObjectID()

	_, err := uc.Toggle(context.Background(), actor, actor.Hex())

	assert.Equal(t, http.StatusBadRequest, apperror.StatusOf(err))
	assert.Equal(t, "You cannot subscribe to yourself", apperror.From(err).Message)
	subs.AssertNotCalled(t, "Toggle", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubscriptionToggle_UnknownChannel(t *testing.T) {
	users := new(MockUserRepository)
	uc := usecase.NewSubscriptionUsecase(new(MockSubscriptionRepository), users, nil)
	channel := bson.NewObjectID()
	users.On("GetById", mock.Anything, channel).Return(model.User{}, repository.ErrNotFound)

	_, err := uc.Toggle(context.Background(), bson.NewObjectID(), channel.Hex())

	assert.Equal(t, http.StatusNotFound, apperror.StatusOf(err))
	assert.Equal(t, "Channel not found", apperror.From(err).Message)
}

func TestSubscriptionToggle_NotifiesChannel(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	users := new(MockUserRepository)
	events := new(MockEventPublisher)
	uc := usecase.NewSubscriptionUsecase(subs, users, events)
	actor, channel := bson.NewObjectID(), bson.NewObjectID()
	users.On("GetById", mock.Anything, channel).Return(model.User{ID: channel}, nil)
	subs.On("Toggle", mock.Anything, actor, channel).Return(true, nil).Once()
	subs.On("Toggle", mock.Anything, actor, channel).Return(false, nil).Once()
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e model.ActivityEvent) bool {
		return e.Type == model.ActivitySubscriptionToggled && e.TargetUserID == channel.Hex() && !e.OccurredAt.IsZero()
	})).Return(nil)

	first, err := uc.Toggle(context.Background(), actor, channel.Hex())
	require.NoError(t, err)
	second, err := uc.Toggle(context.Background(), actor, channel.Hex())
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)
	events.AssertNumberOfCalls(t, "Publish", 2)
}

func TestSubscribers_EmptyList(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	users := new(MockUserRepository)
	uc := usecase.NewSubscriptionUsecase(subs, users, nil)
	channel := bson.NewObjectID()
	subs.On("ListByChannel", mock.Anything, channel).Return([]model.Subscription{}, nil)
	users.On("GetSummaries", mock.Anything, []bson.ObjectID{}).Return(map[bson.ObjectID]model.Owner{}, nil)

	got, err := uc.Subscribers(context.Background(), channel.Hex())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSubscribedChannels_KeepsOrder(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	users := new(MockUserRepository)
	uc := usecase.NewSubscriptionUsecase(subs, users, nil)
	me := bson.NewObjectID()
	a := model.User{ID: bson.NewObjectID(), UserName: "a"}
	b := model.User{ID: bson.NewObjectID(), UserName: "b"}
	subs.On("ListBySubscriber", mock.Anything, me).Return([]model.Subscription{
		{Subscriber: me, Channel: b.ID},
		{Subscriber: me, Channel: a.ID},
	}, nil)
	users.On("GetSummaries", mock.Anything, []bson.ObjectID{b.ID, a.ID}).Return(ownerMap(a, b), nil)

	got, err := uc.SubscribedChannels(context.Background(), me.Hex())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].UserName)
	assert.Equal(t, "a", got[1].UserName)
}
