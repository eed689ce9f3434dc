package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Video struct {
	ID          bson.ObjectID `json:"_id"               bson:"_id,omitempty"`
	OwnerID     bson.ObjectID `json:"ownerId"           bson:"owner"`
	Owner       *Owner        `json:"owner,omitempty"   bson:"-"`
	VideoFile   string        `json:"videoFile"         bson:"videoFile"`
	VideoFileID string        `json:"videoFileId"       bson:"videoFileId"`
	Thumbnail   string        `json:"thumbnail"         bson:"thumbnail"`
	ThumbnailID string        `json:"thumbnailId"       bson:"thumbnailId"`
	Title       string        `json:"title"             bson:"title"`
	Description string        `json:"description"       bson:"description"`
	Duration    float64       `json:"duration"          bson:"duration"`
	Views       int64         `json:"views"             bson:"views"`
	Likes       int64         `json:"likes"             bson:"likes"`
	IsPublished bool          `json:"isPublished"       bson:"isPublished"`
	CreatedAt   time.Time     `json:"createdAt"         bson:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"         bson:"updatedAt"`
}

// VideoPreview is the projection embedded in liked-video listings.
type VideoPreview struct {
	ID        bson.ObjectID `json:"_id"       bson:"_id"`
	Title     string        `json:"title"     bson:"title"`
	Thumbnail string        `json:"thumbnail" bson:"thumbnail"`
	Views     int64         `json:"views"     bson:"views"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// VideoChanges lists the fields an owner may change. Nil means unchanged.
type VideoChanges struct {
	Title       *string
	Description *string
	Thumbnail   *MediaAsset
}

func (c VideoChanges) Empty() bool {
	return c.Title == nil && c.Description == nil && c.Thumbnail == nil
}

// VideoFilter narrows a video listing.
type VideoFilter struct {
	Query   string
	OwnerID *bson.ObjectID
	SortBy  string
	Asc     bool
	Offset  int64
	Limit   int64
}

var videoSortFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"views":     true,
	"likes":     true,
	"title":     true,
	"duration":  true,
}

// ValidVideoSort reports whether field may be used to order video listings.
func ValidVideoSort(field string) bool {
	return videoSortFields[field]
}
