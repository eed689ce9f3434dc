package usecase

import (
	"context"
	"errors"
	"math"
	"os"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
	"vidsocial/infrastructure/utils"
)

const (
	defaultPage  int64 = 1
	defaultLimit int64 = 10
	maxLimit     int64 = 100

	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

// parseID rejects anything that is not a 24 character hex ObjectID.
func parseID(hex, label string) (bson.ObjectID, error) {
	id, ok := model.ParseID(hex)
	if !ok {
		return bson.NilObjectID, apperror.BadRequest("Invalid " + label + " id")
	}
	return id, nil
}

// pageWindow normalises page and limit and returns the matching offset.
func pageWindow(page, limit int64) (int64, int64, int64) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if last := math.MaxInt64/limit + 1; page > last {
		page = last
	}
	return page, limit, (page - 1) * limit
}

func newPage(total, page, limit int64) dto.Page {
	return dto.Page{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}

// notFoundOr maps repository.ErrNotFound to a 404 with msg and anything else to a 500.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperror.NotFound(msg)
	}
	return internal(err)
}

func internal(err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal("Something went wrong").Wrap(err)
}

// emit publishes best-effort: failures are logged and never surface.
func emit(ctx context.Context, publisher repository.IEventPublisher, event model.ActivityEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = utils.GetCurrentTime()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("type", event.Type).Warn("Publish activity event failed")
	}
}

// ownerOf is best-effort: a missing owner leaves the reference unpopulated.
func ownerOf(ctx context.Context, users repository.IUser, id bson.ObjectID) *model.Owner {
	owners, err := users.GetSummaries(ctx, []bson.ObjectID{id})
	if err != nil {
		logger.FromContext(ctx).WithField("error", err).Warn("Populate owner failed")
		return nil
	}
	if o, ok := owners[id]; ok {
		return &o
	}
	return nil
}

// ownersOf returns summaries for ids in order, skipping unknown users.
func ownersOf(ctx context.Context, users repository.IUser, ids []bson.ObjectID) ([]model.Owner, error) {
	summaries, err := users.GetSummaries(ctx, ids)
	if err != nil {
		return nil, internal(err)
	}
	out := make([]model.Owner, 0, len(ids))
	for _, id := range ids {
		if o, ok := summaries[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

// removeSpooled deletes local multipart spool files that never reached the media store.
func removeSpooled(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			logger.FromContext(ctx).WithField("error", err).WithField("path", p).Warn("Failed to remove spooled upload")
		}
	}
}

// discard removes an uploaded asset that will not be referenced.
func discard(ctx context.Context, media repository.IMedia, asset *model.MediaAsset) {
	if asset == nil || asset.PublicID == "" {
		return
	}
	if err := media.Delete(ctx, asset.PublicID, asset.ResourceType); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("publicId", asset.PublicID).Warn("Failed to discard orphaned asset")
	}
}
