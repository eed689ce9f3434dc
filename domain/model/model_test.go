package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

func TestParseID(t *testing.T) {
	valid := bson.NewObjectID()

	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "valid hex", input: valid.Hex(), ok: true},
		{name: "empty", input: "", ok: false},
		{name: "too short", input: "abc123", ok: false},
		{name: "not hex", input: "zzzzzzzzzzzzzzzzzzzzzzzz", ok: false},
		{name: "twelve byte string is not accepted", input: "aaaaaaaaaaaa", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := model.ParseID(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, valid, id)
			} else {
				assert.True(t, id.IsZero())
			}
		})
	}
}

func TestVideoChanges_Empty(t *testing.T) {
	assert.True(t, model.VideoChanges{}.Empty())

	title := "new title"
	assert.False(t, model.VideoChanges{Title: &title}.Empty())
	assert.False(t, model.VideoChanges{Thumbnail: &model.MediaAsset{PublicID: "image/x.png"}}.Empty())
}

func TestUser_Summary(t *testing.T) {
	u := model.User{
		ID:       bson.NewObjectID(),
		UserName: "alice",
		FullName: "Alice A",
		Avatar:   "http://cdn/avatar.png",
		Password: "hash",
		Email:    "alice@example.com",
	}

	s := u.Summary()

	assert.Equal(t, model.Owner{ID: u.ID, UserName: "alice", FullName: "Alice A", Avatar: "http://cdn/avatar.png"}, s)
}

func TestValidVideoSort(t *testing.T) {
	for _, f := range []string{"createdAt", "updatedAt", "views", "likes", "title", "duration"} {
		assert.True(t, model.ValidVideoSort(f), f)
	}
	assert.False(t, model.ValidVideoSort("owner"))
	assert.False(t, model.ValidVideoSort(""))
}
