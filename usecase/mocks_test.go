package usecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetById(ctx context.Context, id bson.ObjectID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByLogin(ctx context.Context, email, userName string) (model.User, error) {
	args := m.Called(ctx, email, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetSummaries(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.Owner, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bson.ObjectID]model.Owner), args.Error(1)
}

func (m *MockUserRepository) UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email *string) (model.User, error) {
	args := m.Called(ctx, id, fullName, email)
	return args.Get(0).(model.User), args.Error(1)
}

type MockVideoRepository struct {
	mock.Mock
}

func (m *MockVideoRepository) Create(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	if args.Error(0) == nil {
		video.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockVideoRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) GetOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error) {
	args := m.Called(ctx, id, owner)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) GetPreviews(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.VideoPreview, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bson.ObjectID]model.VideoPreview), args.Error(1)
}

func (m *MockVideoRepository) List(ctx context.Context, filter model.VideoFilter) ([]model.Video, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]model.Video), args.Get(1).(int64), args.Error(2)
}

func (m *MockVideoRepository) UpdateOwned(ctx context.Context, id, owner bson.ObjectID, changes model.VideoChanges) (model.Video, error) {
	args := m.Called(ctx, id, owner, changes)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	return m.Called(ctx, id, owner).Error(0)
}

func (m *MockVideoRepository) TogglePublishOwned(ctx context.Context, id, owner bson.ObjectID) (model.Video, error) {
	args := m.Called(ctx, id, owner)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoRepository) IncrementViews(ctx context.Context, id bson.ObjectID) (model.Video, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Video), args.Error(1)
}

type MockVideoCache struct {
	mock.Mock
}

func (m *MockVideoCache) Get(ctx context.Context, id bson.ObjectID) (*model.Video, bool) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*model.Video), args.Bool(1)
}

func (m *MockVideoCache) Set(ctx context.Context, video model.Video) {
	m.Called(ctx, video)
}

func (m *MockVideoCache) Invalidate(ctx context.Context, id bson.ObjectID) {
	m.Called(ctx, id)
}

type MockMedia struct {
	mock.Mock
}

func (m *MockMedia) Upload(ctx context.Context, localPath string, kind model.MediaKind) (model.MediaAsset, error) {
	args := m.Called(ctx, localPath, kind)
	return args.Get(0).(model.MediaAsset), args.Error(1)
}

func (m *MockMedia) Delete(ctx context.Context, publicID string, kind model.MediaKind) error {
	return m.Called(ctx, publicID, kind).Error(0)
}

type MockTweetRepository struct {
	mock.Mock
}

func (m *MockTweetRepository) Create(ctx context.Context, tweet *model.Tweet) error {
	args := m.Called(ctx, tweet)
	if args.Error(0) == nil {
		tweet.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockTweetRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Tweet, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) List(ctx context.Context, owner *bson.ObjectID) ([]model.Tweet, error) {
	args := m.Called(ctx, owner)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Tweet, error) {
	args := m.Called(ctx, id, owner, content)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	return m.Called(ctx, id, owner).Error(0)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	args := m.Called(ctx, comment)
	if args.Error(0) == nil {
		comment.ID = bson.NewObjectID()
	}
	return args.Error(0)
}

func (m *MockCommentRepository) GetById(ctx context.Context, id bson.ObjectID) (model.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByVideo(ctx context.Context, video bson.ObjectID, offset, limit int64) ([]model.Comment, int64, error) {
	args := m.Called(ctx, video, offset, limit)
	return args.Get(0).([]model.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) UpdateContentOwned(ctx context.Context, id, owner bson.ObjectID, content string) (model.Comment, error) {
	args := m.Called(ctx, id, owner, content)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentRepository) DeleteOwned(ctx context.Context, id, owner bson.ObjectID) error {
	return m.Called(ctx, id, owner).Error(0)
}

type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Toggle(ctx context.Context, kind model.LikeKind, subject, actor bson.ObjectID) (model.LikeToggle, error) {
	args := m.Called(ctx, kind, subject, actor)
	return args.Get(0).(model.LikeToggle), args.Error(1)
}

func (m *MockLikeRepository) LikedSubjects(ctx context.Context, kind model.LikeKind, actor bson.ObjectID, subjects []bson.ObjectID) (map[bson.ObjectID]bool, error) {
	args := m.Called(ctx, kind, actor, subjects)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bson.ObjectID]bool), args.Error(1)
}

func (m *MockLikeRepository) ListByActor(ctx context.Context, kind model.LikeKind, actor bson.ObjectID) ([]model.Like, error) {
	args := m.Called(ctx, kind, actor)
	return args.Get(0).([]model.Like), args.Error(1)
}

type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Toggle(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	args := m.Called(ctx, subscriber, channel)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) Exists(ctx context.Context, subscriber, channel bson.ObjectID) (bool, error) {
	args := m.Called(ctx, subscriber, channel)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) ListByChannel(ctx context.Context, channel bson.ObjectID) ([]model.Subscription, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) ListBySubscriber(ctx context.Context, subscriber bson.ObjectID) ([]model.Subscription, error) {
	args := m.Called(ctx, subscriber)
	return args.Get(0).([]model.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) CountByChannel(ctx context.Context, channel bson.ObjectID) (int64, error) {
	args := m.Called(ctx, channel)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSubscriptionRepository) CountBySubscriber(ctx context.Context, subscriber bson.ObjectID) (int64, error) {
	args := m.Called(ctx, subscriber)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

// ofType matches an ActivityEvent by type.
func ofType(t model.ActivityType) interface{} {
	return mock.MatchedBy(func(e model.ActivityEvent) bool { return e.Type == t })
}

func ownerMap(users ...model.User) map[bson.ObjectID]model.Owner {
	out := make(map[bson.ObjectID]model.Owner, len(users))
	for _, u := range users {
		out[u.ID] = u.Summary()
	}
	return out
}
