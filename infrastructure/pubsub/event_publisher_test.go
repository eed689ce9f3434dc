package pubsub

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	"github.com/stretchr/testify/assert"
	"vidsocial/domain/model"
)

func TestNewPubSub_RequiresProject(t *testing.T) {
	client, err := NewPubSub(context.Background(), "", "")
	assert.Nil(t, client)
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestNewEventPublisher_NilClient(t *testing.T) {
	p, err := newEventPublisher(context.Background(), nil, "activity")
	assert.Nil(t, p)
	assert.ErrorIs(t, err, errNotConfigured)
}

func TestOpen_ClosesClientWhenTopicFails(t *testing.T) {
	t.Setenv("PUBSUB_EMULATOR_HOST", "127.0.0.1:1")
	closed := 0
	orig := closeClient
	closeClient = func(*pubsub.Client) error {
		closed++
		return nil
	}
	t.Cleanup(func() { closeClient = orig })

	p, err := Open(context.Background(), "vidsocial", "", "")

	assert.Nil(t, p)
	assert.ErrorIs(t, err, errNoTopic)
	assert.Equal(t, 1, closed)
}

func TestOpen_NotConfiguredCreatesNoClient(t *testing.T) {
	closed := 0
	orig := closeClient
	closeClient = func(*pubsub.Client) error {
		closed++
		return nil
	}
	t.Cleanup(func() { closeClient = orig })

	_, err := Open(context.Background(), "", "", "activity")

	assert.ErrorIs(t, err, errNotConfigured)
	assert.Zero(t, closed)
}

func TestPublish_Unconfigured(t *testing.T) {
	var p *EventPublisher
	assert.ErrorIs(t, p.Publish(context.Background(), model.ActivityEvent{}), errNotConfigured)
}

func TestAttributes(t *testing.T) {
	assert.Equal(t,
		map[string]string{"type": "subscription.toggled", "targetUserId": "u1"},
		attributes(model.ActivityEvent{Type: model.ActivitySubscriptionToggled, TargetUserID: "u1"}))
	assert.Equal(t,
		map[string]string{"type": "tweet.created"},
		attributes(model.ActivityEvent{Type: model.ActivityTweetCreated}))
}
