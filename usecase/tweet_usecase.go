package usecase

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

const msgTweetNotFoundAuth = "Tweet not found or unauthorized"

type ITweetUsecase interface {
	Create(ctx context.Context, actor bson.ObjectID, content string) (model.Tweet, error)
	List(ctx context.Context, viewer bson.ObjectID) ([]model.Tweet, error)
	ListByUser(ctx context.Context, viewer bson.ObjectID, userID string) ([]model.Tweet, error)
	Update(ctx context.Context, actor bson.ObjectID, tweetID, content string) (model.Tweet, error)
	Delete(ctx context.Context, actor bson.ObjectID, tweetID string) error
}

type TweetUsecase struct {
	tweets repository.ITweet
	users  repository.IUser
	likes  repository.ILike
	events repository.IEventPublisher
}

func NewTweetUsecase(tweets repository.ITweet, users repository.IUser, likes repository.ILike, events repository.IEventPublisher) ITweetUsecase {
	return &TweetUsecase{tweets: tweets, users: users, likes: likes, events: events}
}

func (u *TweetUsecase) Create(ctx context.Context, actor bson.ObjectID, content string) (model.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Tweet{}, apperror.BadRequest("Content is required")
	}
	tweet := model.Tweet{OwnerID: actor, Content: content}
	if err := u.tweets.Create(ctx, &tweet); err != nil {
		return model.Tweet{}, apperror.Internal("Error while creating tweet").Wrap(err)
	}
	created, err := u.tweets.GetById(ctx, tweet.ID)
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Re-fetch created tweet failed")
		created = tweet
	}
	created.Owner = ownerOf(ctx, u.users, actor)
	emit(ctx, u.events, model.ActivityEvent{
		Type:      model.ActivityTweetCreated,
		ActorID:   actor.Hex(),
		SubjectID: created.ID.Hex(),
	})
	return created, nil
}

func (u *TweetUsecase) List(ctx context.Context, viewer bson.ObjectID) ([]model.Tweet, error) {
	tweets, err := u.tweets.List(ctx, nil)
	if err != nil {
		return nil, internal(err)
	}
	return u.decorate(ctx, viewer, tweets)
}

func (u *TweetUsecase) ListByUser(ctx context.Context, viewer bson.ObjectID, userID string) ([]model.Tweet, error) {
	owner, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if _, err := u.users.GetById(ctx, owner); err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	tweets, err := u.tweets.List(ctx, &owner)
	if err != nil {
		return nil, internal(err)
	}
	return u.decorate(ctx, viewer, tweets)
}

func (u *TweetUsecase) Update(ctx context.Context, actor bson.ObjectID, tweetID, content string) (model.Tweet, error) {
	id, err := parseID(tweetID, "tweet")
	if err != nil {
		return model.Tweet{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return model.Tweet{}, apperror.BadRequest("Content is required")
	}
	tweet, err := u.tweets.UpdateContentOwned(ctx, id, actor, content)
	if err != nil {
		return model.Tweet{}, notFoundOr(err, msgTweetNotFoundAuth)
	}
	tweet.Owner = ownerOf(ctx, u.users, tweet.OwnerID)
	return tweet, nil
}

func (u *TweetUsecase) Delete(ctx context.Context, actor bson.ObjectID, tweetID string) error {
	id, err := parseID(tweetID, "tweet")
	if err != nil {
		return err
	}
	if err := u.tweets.DeleteOwned(ctx, id, actor); err != nil {
		return notFoundOr(err, msgTweetNotFoundAuth)
	}
	return nil
}

// decorate populates owners and the viewer's isLiked with one query each.
func (u *TweetUsecase) decorate(ctx context.Context, viewer bson.ObjectID, tweets []model.Tweet) ([]model.Tweet, error) {
	if len(tweets) == 0 {
		return []model.Tweet{}, nil
	}
	ownerIDs := make([]bson.ObjectID, len(tweets))
	tweetIDs := make([]bson.ObjectID, len(tweets))
	for i, t := range tweets {
		ownerIDs[i] = t.OwnerID
		tweetIDs[i] = t.ID
	}
	owners, err := u.users.GetSummaries(ctx, ownerIDs)
	if err != nil {
		return nil, internal(err)
	}
	liked, err := u.likes.LikedSubjects(ctx, model.LikeKindTweet, viewer, tweetIDs)
	if err != nil {
		return nil, internal(err)
	}
	for i := range tweets {
		if o, ok := owners[tweets[i].OwnerID]; ok {
			tweets[i].Owner = &o
		}
		tweets[i].IsLiked = liked[tweets[i].ID]
	}
	return tweets, nil
}
