package persistence

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
)

var (
	withoutPassword   = bson.M{"password": 0}
	summaryProjection = bson.M{"_id": 1, "username": 1, "fullName": 1, "avatar": 1}
)

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) repository.IUser {
	return &UserRepository{users: db.Collection(collUsers)}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.ID = bson.NewObjectID()
	user.UserName = strings.ToLower(user.UserName)
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt, user.UpdatedAt = now, now
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		logger.FromContext(ctx).WithField("error", err).WithField("username", user.UserName).Error("mongo: create user failed")
		return mapErr("create user", err)
	}
	return nil
}

func (r *UserRepository) GetById(ctx context.Context, id bson.ObjectID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword))
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	filter := bson.M{"username": strings.ToLower(strings.TrimSpace(userName))}
	return r.findOne(ctx, filter, options.FindOne().SetProjection(withoutPassword))
}

func (r *UserRepository) GetByLogin(ctx context.Context, email, userName string) (model.User, error) {
	return r.findOne(ctx, loginFilter(email, userName))
}

func (r *UserRepository) GetSummaries(ctx context.Context, ids []bson.ObjectID) (map[bson.ObjectID]model.Owner, error) {
	out := make(map[bson.ObjectID]model.Owner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": uniqueIDs(ids)}}, options.Find().SetProjection(summaryProjection))
	if err != nil {
		return nil, mapErr("find user summaries", err)
	}
	var owners []model.Owner
	if err := cursor.All(ctx, &owners); err != nil {
		return nil, mapErr("decode user summaries", err)
	}
	for _, o := range owners {
		out[o.ID] = o
	}
	return out, nil
}

func (r *UserRepository) UpdateAccount(ctx context.Context, id bson.ObjectID, fullName, email *string) (model.User, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if fullName != nil {
		set["fullName"] = *fullName
	}
	if email != nil {
		set["email"] = strings.ToLower(*email)
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)
	var user model.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		return model.User{}, mapErr("update account", err)
	}
	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOneOptions]) (model.User, error) {
	var user model.User
	if err := r.users.FindOne(ctx, filter, opts...).Decode(&user); err != nil {
		return model.User{}, mapErr("find user", err)
	}
	return user, nil
}

// loginFilter matches whichever identifiers were supplied.
func loginFilter(email, userName string) bson.M {
	var or bson.A
	if e := strings.ToLower(strings.TrimSpace(email)); e != "" {
		or = append(or, bson.M{"email": e})
	}
	if u := strings.ToLower(strings.TrimSpace(userName)); u != "" {
		or = append(or, bson.M{"username": u})
	}
	if len(or) == 0 {
		return bson.M{"_id": bson.NilObjectID}
	}
	return bson.M{"$or": or}
}
