package events

import (
	"context"
	"errors"

	"github.com/goccy/go-json"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

// Encode is the wire form shared by every sink.
func Encode(event model.ActivityEvent) ([]byte, error) {
	return json.Marshal(event)
}

func Decode(data []byte) (model.ActivityEvent, error) {
	var event model.ActivityEvent
	err := json.Unmarshal(data, &event)
	return event, err
}

// Fanout delivers each event to every sink and joins their errors.
type Fanout struct {
	sinks []repository.IEventPublisher
}

// NewFanout skips nil sinks. With no sinks Publish is a no-op.
func NewFanout(sinks ...repository.IEventPublisher) repository.IEventPublisher {
	f := &Fanout{}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

func (f *Fanout) Publish(ctx context.Context, event model.ActivityEvent) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
