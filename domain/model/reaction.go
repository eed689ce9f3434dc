package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// LikeKind names the collection a like points into.
type LikeKind string

const (
	LikeKindVideo   LikeKind = "video"
	LikeKindComment LikeKind = "comment"
	LikeKindTweet   LikeKind = "tweet"
)

// Like exists while LikedBy likes Subject. There is no boolean state.
type Like struct {
	ID        bson.ObjectID `json:"_id"       bson:"_id,omitempty"`
	Kind      LikeKind      `json:"kind"      bson:"kind"`
	Subject   bson.ObjectID `json:"subject"   bson:"subject"`
	LikedBy   bson.ObjectID `json:"likedBy"   bson:"likedBy"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}

// LikeToggle is the outcome of one toggle. Likes is the subject counter after
// the flip and is zero for kinds without a counter.
type LikeToggle struct {
	IsLiked      bool          `json:"isLiked"`
	Likes        int64         `json:"likes"`
	SubjectOwner bson.ObjectID `json:"-"`
}

// LikedVideo is one entry of the liked-videos listing.
type LikedVideo struct {
	ID        bson.ObjectID `json:"_id"`
	Video     VideoPreview  `json:"video"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Subscription exists while Subscriber follows Channel.
type Subscription struct {
	ID         bson.ObjectID `json:"_id"        bson:"_id,omitempty"`
	Subscriber bson.ObjectID `json:"subscriber" bson:"subscriber"`
	Channel    bson.ObjectID `json:"channel"    bson:"channel"`
	CreatedAt  time.Time     `json:"createdAt"  bson:"createdAt"`
}
