package usecase_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

// memStore keeps tweets and tweet likes in memory with the same owner scoped
// semantics as the Mongo repositories.
type memStore struct {
	mu     sync.Mutex
	tweets map[bson.ObjectID]model.Tweet
	likes  map[[2]bson.ObjectID]model.Like
}

func newMemStore() *memStore {
	return &memStore{
		tweets: map[bson.ObjectID]model.Tweet{},
		likes:  map[[2]bson.ObjectID]model.Like{},
	}
}

type memTweets struct{ *memStore }

type memLikes struct{ *memStore }

func (s memTweets) Create(_ context.Context, tweet *model.Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tweet.ID = bson.NewObjectID()
	tweet.CreatedAt = time.Now()
	tweet.UpdatedAt = tweet.CreatedAt
	s.tweets[tweet.ID] = *tweet
	return nil
}

func (s memTweets) GetById(_ context.Context, id bson.ObjectID) (model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok {
		return model.Tweet{}, repository.ErrNotFound
	}
	return t, nil
}

func (s memTweets) List(_ context.Context, owner *bson.ObjectID) ([]model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Tweet{}
	for _, t := range s.tweets {
		if owner == nil || t.OwnerID == *owner {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s memTweets) UpdateContentOwned(_ context.Context, id, owner bson.ObjectID, content string) (model.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok || t.OwnerID != owner {
		return model.Tweet{}, repository.ErrNotFound
	}
	t.Content = content
	t.UpdatedAt = time.Now()
	s.tweets[id] = t
	return t, nil
}

func (s memTweets) DeleteOwned(_ context.Context, id, owner bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[id]
	if !ok || t.OwnerID != owner {
		return repository.ErrNotFound
	}
	delete(s.tweets, id)
	return nil
}

func (s memLikes) Toggle(_ context.Context, kind model.LikeKind, subject, actor bson.ObjectID) (model.LikeToggle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tweets[subject]
	if kind != model.LikeKindTweet || !ok {
		return model.LikeToggle{}, repository.ErrNotFound
	}
	key := [2]bson.ObjectID{subject, actor}
	_, liked := s.likes[key]
	if liked {
		delete(s.likes, key)
		t.Likes--
	} else {
		s.likes[key] = model.Like{ID: bson.NewObjectID(), Kind: kind, Subject: subject, LikedBy: actor, CreatedAt: time.Now()}
		t.Likes++
	}
	s.tweets[subject] = t
	return model.LikeToggle{IsLiked: !liked, Likes: t.Likes, SubjectOwner: t.OwnerID}, nil
}

func (s memLikes) LikedSubjects(_ context.Context, _ model.LikeKind, actor bson.ObjectID, subjects []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[bson.ObjectID]bool{}
	for _, id := range subjects {
		if _, ok := s.likes[[2]bson.ObjectID{id, actor}]; ok {
			out[id] = true
		}
	}
	return out, nil
}

func (s memLikes) ListByActor(_ context.Context, kind model.LikeKind, actor bson.ObjectID) ([]model.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Like{}
	for _, l := range s.likes {
		if l.Kind == kind && l.LikedBy == actor {
			out = append(out, l)
		}
	}
	return out, nil
}
