package servicebus

import (
	"context"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/events"
	"vidsocial/infrastructure/logger"
)

var (
	errNotConfigured = errors.New("service bus client not configured")
	errNoQueue       = errors.New("service bus queue not configured")
)

var closeClient = func(ctx context.Context, client *azservicebus.Client) error { return client.Close(ctx) }

// NewServiceBus prefers a connection string; otherwise it authenticates to the
// fully qualified namespace with DefaultAzureCredential.
func NewServiceBus(namespace, connectionString string) (*azservicebus.Client, error) {
	if connectionString != "" {
		client, err := azservicebus.NewClientFromConnectionString(connectionString, nil)
		if err != nil {
			return nil, fmt.Errorf("create service bus client: %w", err)
		}
		return client, nil
	}
	if namespace == "" {
		return nil, errNotConfigured
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	client, err := azservicebus.NewClient(namespace, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create service bus client: %w", err)
	}
	return client, nil
}

var _ repository.IEventPublisher = (*EventPublisher)(nil)

type EventPublisher struct {
	client *azservicebus.Client
	sender *azservicebus.Sender
	queue  string
}

// Open builds the client and a sender for queue. The returned publisher owns
// the client; when the sender cannot be created the client is closed.
func Open(ctx context.Context, namespace, connectionString, queue string) (*EventPublisher, error) {
	client, err := NewServiceBus(namespace, connectionString)
	if err != nil {
		return nil, err
	}
	publisher, err := newEventPublisher(client, queue)
	if err != nil {
		if cerr := closeClient(ctx, client); cerr != nil {
			logger.GetLogger().WithField("error", cerr).Warn("Close service bus client failed")
		}
		return nil, err
	}
	return publisher, nil
}

func newEventPublisher(client *azservicebus.Client, queue string) (*EventPublisher, error) {
	if client == nil {
		return nil, errNotConfigured
	}
	if queue == "" {
		return nil, errNoQueue
	}
	sender, err := client.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while making new sender service bus.")
		return nil, fmt.Errorf("new sender for %s: %w", queue, err)
	}
	return &EventPublisher{client: client, sender: sender, queue: queue}, nil
}

func (p *EventPublisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	if p == nil || p.sender == nil {
		return errNotConfigured
	}
	msg, err := message(event)
	if err != nil {
		return err
	}
	if err := p.sender.SendMessage(ctx, msg, nil); err != nil {
		return fmt.Errorf("send %s to %s: %w", event.Type, p.queue, err)
	}
	return nil
}

func message(event model.ActivityEvent) (*azservicebus.Message, error) {
	body, err := events.Encode(event)
	if err != nil {
		return nil, fmt.Errorf("encode event: %w", err)
	}
	subject := string(event.Type)
	contentType := "application/json"
	props := map[string]any{"type": subject}
	if event.TargetUserID != "" {
		props["targetUserId"] = event.TargetUserID
	}
	return &azservicebus.Message{
		Body:                  body,
		Subject:               &subject,
		ContentType:           &contentType,
		ApplicationProperties: props,
	}, nil
}

// Close releases the sender and the client.
func (p *EventPublisher) Close(ctx context.Context) {
	if err := p.sender.Close(ctx); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while closing sender.")
	}
	if err := closeClient(ctx, p.client); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Close service bus client failed")
	}
}
