package usecase

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

type ISubscriptionUsecase interface {
	Toggle(ctx context.Context, actor bson.ObjectID, channelID string) (bool, error)
	Subscribers(ctx context.Context, channelID string) ([]model.Owner, error)
	SubscribedChannels(ctx context.Context, subscriberID string) ([]model.Owner, error)
}

type SubscriptionUsecase struct {
	subscriptions repository.ISubscription
	users         repository.IUser
	events        repository.IEventPublisher
}

func NewSubscriptionUsecase(subscriptions repository.ISubscription, users repository.IUser, events repository.IEventPublisher) ISubscriptionUsecase {
	return &SubscriptionUsecase{subscriptions: subscriptions, users: users, events: events}
}

func (u *SubscriptionUsecase) Toggle(ctx context.Context, actor bson.ObjectID, channelID string) (bool, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return false, err
	}
	if channel == actor {
		return false, apperror.BadRequest("You cannot subscribe to yourself")
	}
	if _, err := u.users.GetById(ctx, channel); err != nil {
		return false, notFoundOr(err, "Channel not found")
	}
	subscribed, err := u.subscriptions.Toggle(ctx, actor, channel)
	if err != nil {
		return false, internal(err)
	}
	emit(ctx, u.events, model.ActivityEvent{
		Type:         model.ActivitySubscriptionToggled,
		ActorID:      actor.Hex(),
		SubjectID:    channel.Hex(),
		TargetUserID: channel.Hex(),
		Attributes:   map[string]string{"isSubscribed": strconv.FormatBool(subscribed)},
	})
	return subscribed, nil
}

func (u *SubscriptionUsecase) Subscribers(ctx context.Context, channelID string) ([]model.Owner, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	subs, err := u.subscriptions.ListByChannel(ctx, channel)
	if err != nil {
		return nil, internal(err)
	}
	ids := make([]bson.ObjectID, len(subs))
	for i, s := range subs {
		ids[i] = s.Subscriber
	}
	return ownersOf(ctx, u.users, ids)
}

func (u *SubscriptionUsecase) SubscribedChannels(ctx context.Context, subscriberID string) ([]model.Owner, error) {
	subscriber, err := parseID(subscriberID, "subscriber")
	if err != nil {
		return nil, err
	}
	subs, err := u.subscriptions.ListBySubscriber(ctx, subscriber)
	if err != nil {
		return nil, internal(err)
	}
	ids := make([]bson.ObjectID, len(subs))
	for i, s := range subs {
		ids[i] = s.Channel
	}
	return ownersOf(ctx, u.users, ids)
}
