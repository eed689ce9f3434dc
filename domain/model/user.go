package model

import (
	"time"

	"github.com/golang-jwt/jwt"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account. Password holds the bcrypt hash and is never serialised.
type User struct {
	ID           bson.ObjectID `json:"_id"          bson:"_id,omitempty"`
	UserName     string        `json:"username"     bson:"username"`
	Email        string        `json:"email"        bson:"email"`
	FullName     string        `json:"fullName"     bson:"fullName"`
	Password     string        `json:"-"            bson:"password,omitempty"`
	Avatar       string        `json:"avatar"       bson:"avatar"`
	AvatarID     string        `json:"-"            bson:"avatarId,omitempty"`
	CoverImage   string        `json:"coverImage"   bson:"coverImage"`
	CoverImageID string        `json:"-"            bson:"coverImageId,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"    bson:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"    bson:"updatedAt"`
}

// Summary returns the public subset embedded in populated documents.
func (u User) Summary() Owner {
	return Owner{ID: u.ID, UserName: u.UserName, FullName: u.FullName, Avatar: u.Avatar}
}

// Owner is the populated form of an owner, subscriber or channel reference.
type Owner struct {
	ID       bson.ObjectID `json:"_id"      bson:"_id"`
	UserName string        `json:"username" bson:"username"`
	FullName string        `json:"fullName" bson:"fullName"`
	Avatar   string        `json:"avatar"   bson:"avatar"`
}

// ChannelProfile is a user as seen on their channel page.
type ChannelProfile struct {
	Owner
	CoverImage                string    `json:"coverImage"`
	Email                     string    `json:"email"`
	SubscribersCount          int64     `json:"subscribersCount"`
	ChannelsSubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed              bool      `json:"isSubscribed"`
	CreatedAt                 time.Time `json:"createdAt"`
}

type UserClaims struct {
	UserName string `json:"username"`
	Email    string `json:"email"`
	jwt.StandardClaims
}
