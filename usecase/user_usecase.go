package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/utils"
)

const (
	msgInvalidCredentials = "Invalid user credentials"
	msgUserExists         = "User with email or username already exists"
)

type IUserUsecase interface {
	Register(ctx context.Context, req dto.ReqRegister) (model.User, error)
	Login(ctx context.Context, req dto.ReqLogin) (dto.ResLogin, error)
	Current(ctx context.Context, actor bson.ObjectID) (model.User, error)
	UpdateAccount(ctx context.Context, actor bson.ObjectID, req dto.ReqUpdateAccount) (model.User, error)
	ChannelProfile(ctx context.Context, viewer bson.ObjectID, userName string) (model.ChannelProfile, error)
}

type UserUsecase struct {
	users         repository.IUser
	subscriptions repository.ISubscription
	media         repository.IMedia
	secretKey     string
	tokenTTL      time.Duration
	validate      *validator.Validate
}

func NewUserUsecase(
	users repository.IUser,
	subscriptions repository.ISubscription,
	media repository.IMedia,
	secretKey string,
	tokenTTL time.Duration,
) IUserUsecase {
	return &UserUsecase{
		users:         users,
		subscriptions: subscriptions,
		media:         media,
		secretKey:     secretKey,
		tokenTTL:      tokenTTL,
		validate:      validator.New(),
	}
}

func (u *UserUsecase) Register(ctx context.Context, req dto.ReqRegister) (model.User, error) {
	defer removeSpooled(ctx, req.AvatarPath, req.CoverImagePath)

	user := model.User{
		UserName: strings.ToLower(strings.TrimSpace(req.UserName)),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		FullName: strings.TrimSpace(req.FullName),
	}
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"username", user.UserName},
		{"email", user.Email},
		{"fullName", user.FullName},
		{"password", strings.TrimSpace(req.Password)},
	} {
		if f.value == "" {
			missing = append(missing, f.name+" is required")
		}
	}
	if len(missing) > 0 {
		return model.User{}, apperror.BadRequest("All fields are required").WithDetails(missing...)
	}
	if err := u.validate.Var(user.Email, "email"); err != nil {
		return model.User{}, apperror.BadRequest("Invalid email address")
	}
	if len(req.Password) > maxPasswordBytes {
		return model.User{}, apperror.BadRequest("Password must be at most 72 bytes")
	}

	if _, err := u.users.GetByLogin(ctx, user.Email, user.UserName); err == nil {
		return model.User{}, apperror.Conflict(msgUserExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.User{}, internal(err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return model.User{}, internal(err)
	}
	user.Password = hash

	var uploaded []*model.MediaAsset
	if req.AvatarPath != "" {
		avatar, err := u.media.Upload(ctx, req.AvatarPath, model.MediaKindImage)
		if err != nil {
			return model.User{}, apperror.Internal("Error uploading avatar").Wrap(err)
		}
		user.Avatar, user.AvatarID = avatar.URL, avatar.PublicID
		uploaded = append(uploaded, &avatar)
	}
	if req.CoverImagePath != "" {
		cover, err := u.media.Upload(ctx, req.CoverImagePath, model.MediaKindImage)
		if err != nil {
			discardAll(ctx, u.media, uploaded)
			return model.User{}, apperror.Internal("Error uploading cover image").Wrap(err)
		}
		user.CoverImage, user.CoverImageID = cover.URL, cover.PublicID
		uploaded = append(uploaded, &cover)
	}

	if err := u.users.CreateUser(ctx, &user); err != nil {
		discardAll(ctx, u.media, uploaded)
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperror.Conflict(msgUserExists)
		}
		return model.User{}, apperror.Internal("Something went wrong while registering the user").Wrap(err)
	}
	user.Password = ""
	return user, nil
}

func (u *UserUsecase) Login(ctx context.Context, req dto.ReqLogin) (dto.ResLogin, error) {
	if strings.TrimSpace(req.Email) == "" && strings.TrimSpace(req.UserName) == "" {
		return dto.ResLogin{}, apperror.BadRequest("Username or email is required")
	}
	if req.Password == "" {
		return dto.ResLogin{}, apperror.BadRequest("Password is required")
	}
	user, err := u.users.GetByLogin(ctx, req.Email, req.UserName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.ResLogin{}, apperror.Unauthorized(msgInvalidCredentials)
		}
		return dto.ResLogin{}, internal(err)
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		return dto.ResLogin{}, apperror.Unauthorized(msgInvalidCredentials)
	}
	token, err := utils.GenerateAccessToken(user, u.secretKey, u.tokenTTL)
	if err != nil {
		return dto.ResLogin{}, internal(err)
	}
	user.Password = ""
	return dto.ResLogin{User: user, AccessToken: token}, nil
}

func (u *UserUsecase) Current(ctx context.Context, actor bson.ObjectID) (model.User, error) {
	user, err := u.users.GetById(ctx, actor)
	if err != nil {
		return model.User{}, notFoundOr(err, "User not found")
	}
	return user, nil
}

func (u *UserUsecase) UpdateAccount(ctx context.Context, actor bson.ObjectID, req dto.ReqUpdateAccount) (model.User, error) {
	var fullName, email *string
	if v := strings.TrimSpace(req.FullName); v != "" {
		fullName = &v
	}
	if v := strings.ToLower(strings.TrimSpace(req.Email)); v != "" {
		if err := u.validate.Var(v, "email"); err != nil {
			return model.User{}, apperror.BadRequest("Invalid email address")
		}
		email = &v
	}
	if fullName == nil && email == nil {
		return model.User{}, apperror.BadRequest("At least one of fullName or email is required")
	}
	user, err := u.users.UpdateAccount(ctx, actor, fullName, email)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, apperror.Conflict("Email already in use")
		}
		return model.User{}, notFoundOr(err, "User not found")
	}
	return user, nil
}

func (u *UserUsecase) ChannelProfile(ctx context.Context, viewer bson.ObjectID, userName string) (model.ChannelProfile, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return model.ChannelProfile{}, apperror.BadRequest("Username is missing")
	}
	user, err := u.users.GetByUserName(ctx, userName)
	if err != nil {
		return model.ChannelProfile{}, notFoundOr(err, "Channel does not exist")
	}
	subscribers, err := u.subscriptions.CountByChannel(ctx, user.ID)
	if err != nil {
		return model.ChannelProfile{}, internal(err)
	}
	subscribedTo, err := u.subscriptions.CountBySubscriber(ctx, user.ID)
	if err != nil {
		return model.ChannelProfile{}, internal(err)
	}
	isSubscribed, err := u.subscriptions.Exists(ctx, viewer, user.ID)
	if err != nil {
		return model.ChannelProfile{}, internal(err)
	}
	return model.ChannelProfile{
		Owner:                     user.Summary(),
		CoverImage:                user.CoverImage,
		Email:                     user.Email,
		SubscribersCount:          subscribers,
		ChannelsSubscribedToCount: subscribedTo,
		IsSubscribed:              isSubscribed,
		CreatedAt:                 user.CreatedAt,
	}, nil
}

func discardAll(ctx context.Context, media repository.IMedia, assets []*model.MediaAsset) {
	for _, a := range assets {
		discard(ctx, media, a)
	}
}
