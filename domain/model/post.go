package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Tweet struct {
	ID        bson.ObjectID `json:"_id"             bson:"_id,omitempty"`
	OwnerID   bson.ObjectID `json:"ownerId"         bson:"owner"`
	Owner     *Owner        `json:"owner,omitempty" bson:"-"`
	Content   string        `json:"content"         bson:"content"`
	Likes     int64         `json:"likes"           bson:"likes"`
	IsLiked   bool          `json:"isLiked"         bson:"-"`
	CreatedAt time.Time     `json:"createdAt"       bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"       bson:"updatedAt"`
}

type Comment struct {
	ID        bson.ObjectID `json:"_id"             bson:"_id,omitempty"`
	OwnerID   bson.ObjectID `json:"ownerId"         bson:"owner"`
	Owner     *Owner        `json:"owner,omitempty" bson:"-"`
	VideoID   bson.ObjectID `json:"video"           bson:"video"`
	Content   string        `json:"content"         bson:"content"`
	CreatedAt time.Time     `json:"createdAt"       bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"       bson:"updatedAt"`
}
