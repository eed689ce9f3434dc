package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

// ParseID accepts a 24 character hex ObjectID. Existence is not checked.
func ParseID(hex string) (bson.ObjectID, bool) {
	if len(hex) != 24 {
		return bson.NilObjectID, false
	}
	id, err := bson.ObjectIDFromHex(hex)
	if err != nil {
		return bson.NilObjectID, false
	}
	return id, true
}
