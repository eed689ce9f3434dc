package persistence

import (
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
)

// videoListFilter matches title as a case-insensitive literal substring.
func videoListFilter(f model.VideoFilter) bson.M {
	filter := bson.M{}
	if f.Query != "" {
		filter["title"] = bson.M{"$regex": regexp.QuoteMeta(f.Query), "$options": "i"}
	}
	if f.OwnerID != nil {
		filter["owner"] = *f.OwnerID
	}
	return filter
}

// videoListSort falls back to createdAt and breaks ties on _id so pages are stable.
func videoListSort(f model.VideoFilter) bson.D {
	field := f.SortBy
	if !model.ValidVideoSort(field) {
		field = "createdAt"
	}
	dir := -1
	if f.Asc {
		dir = 1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

func ownedFilter(id, owner bson.ObjectID) bson.M {
	return bson.M{"_id": id, "owner": owner}
}

func videoChangesUpdate(changes model.VideoChanges, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if changes.Title != nil {
		set["title"] = *changes.Title
	}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Thumbnail != nil {
		set["thumbnail"] = changes.Thumbnail.URL
		set["thumbnailId"] = changes.Thumbnail.PublicID
	}
	return bson.M{"$set": set}
}

func likeFilter(kind model.LikeKind, subject, actor bson.ObjectID) bson.M {
	return bson.M{"kind": kind, "subject": subject, "likedBy": actor}
}

// subjectCollection returns the collection holding subjects of kind and whether
// its "likes" field mirrors the number of likes. Comments keep no counter.
func subjectCollection(kind model.LikeKind) (string, bool) {
	switch kind {
	case model.LikeKindVideo:
		return collVideos, true
	case model.LikeKindTweet:
		return collTweets, true
	case model.LikeKindComment:
		return collComments, false
	}
	return "", false
}

func uniqueIDs(ids []bson.ObjectID) []bson.ObjectID {
	seen := make(map[bson.ObjectID]struct{}, len(ids))
	out := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mapErr converts driver errors to repository sentinels and annotates the rest.
func mapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
