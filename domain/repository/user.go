package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/model"
)

type IUser interface {
	CreateUser(ctx context.Context, user *model.User) error
	// GetById never returns the password hash.
	GetById(ctx context.Context, id bson.ObjectID) (model.User, error)
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	// GetByLogin matches email or username and includes the password hash.
	GetByLogin(ctx context.Context, email, userName string) (model.User, error)
	GetSummaries(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.Owner, error)
	UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email *string) (model.User, error)
}
