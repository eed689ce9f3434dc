package pubsub

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/pubsub"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/events"
	"vidsocial/infrastructure/logger"
)

var (
	errNotConfigured = errors.New("pubsub client not configured")
	errNoTopic       = errors.New("pubsub topic not configured")
)

var closeClient = func(client *pubsub.Client) error { return client.Close() }

// NewPubSub uses credentialsFile when set, otherwise Application Default
// Credentials. With PUBSUB_EMULATOR_HOST set the client skips credentials.
func NewPubSub(ctx context.Context, projectID, credentialsFile string) (*pubsub.Client, error) {
	if projectID == "" {
		return nil, errNotConfigured
	}
	var opts []option.ClientOption
	switch {
	case credentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	case os.Getenv("PUBSUB_EMULATOR_HOST") != "":
	default:
		creds, err := google.FindDefaultCredentials(ctx, pubsub.ScopePubSub)
		if err != nil {
			return nil, fmt.Errorf("find default credentials: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create pubsub client: %w", err)
	}
	return client, nil
}

var _ repository.IEventPublisher = (*EventPublisher)(nil)

type EventPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
}

// Open connects and prepares topicID. The returned publisher owns the client;
// when the topic cannot be prepared the client is closed before returning.
func Open(ctx context.Context, projectID, credentialsFile, topicID string) (*EventPublisher, error) {
	client, err := NewPubSub(ctx, projectID, credentialsFile)
	if err != nil {
		return nil, err
	}
	publisher, err := newEventPublisher(ctx, client, topicID)
	if err != nil {
		if cerr := closeClient(client); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Warn("Close pubsub client failed")
		}
		return nil, err
	}
	return publisher, nil
}

// newEventPublisher creates topicID when it does not exist yet.
func newEventPublisher(ctx context.Context, client *pubsub.Client, topicID string) (*EventPublisher, error) {
	if client == nil {
		return nil, errNotConfigured
	}
	if topicID == "" {
		return nil, errNoTopic
	}
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", topicID, err)
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicID).Info("Topic doesn't exist - creating it")
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			return nil, fmt.Errorf("create topic %s: %w", topicID, err)
		}
	}
	return &EventPublisher{client: client, topic: topic}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	if p == nil || p.topic == nil {
		return errNotConfigured
	}
	payload, err := events.Encode(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	serverID, err := p.topic.Publish(ctx, &pubsub.Message{
		Data:       payload,
		Attributes: attributes(event),
	}).Get(ctx)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	logger.FromContext(ctx).WithField("server ID", serverID).WithField("type", event.Type).Debug("Message published")
	return nil
}

func attributes(event model.ActivityEvent) map[string]string {
	attrs := map[string]string{"type": string(event.Type)}
	if event.TargetUserID != "" {
		attrs["targetUserId"] = event.TargetUserID
	}
	return attrs
}

// Close flushes pending messages and releases the client.
func (p *EventPublisher) Close() {
	p.topic.Stop()
	if err := closeClient(p.client); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Close pubsub client failed")
	}
}
