package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/domain/repository"
	"vidsocial/infrastructure/logger"
	"vidsocial/infrastructure/utils"
)

const (
	AccessTokenCookie = "accessToken"
	ContextUser       = "user"
	ContextUserID     = "user_id"
)

// Auth accepts the accessToken cookie or a Bearer header and attaches the
// user (password omitted) to the context.
func Auth(userRepository repository.IUser, secretKey string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := accessToken(ctx)
		if token == "" {
			unauthorized(ctx, "Unauthorized request")
			return
		}

		userClaims, err := utils.ParseAccessToken(token, secretKey)
		if err != nil {
			logger.FromContext(ctx.Request.Context()).WithField("error", err).Debug("Rejected access token")
			unauthorized(ctx, "Invalid access token", reason(err))
			return
		}

		userID, ok := model.ParseID(userClaims.Subject)
		if !ok {
			unauthorized(ctx, "Invalid access token")
			return
		}
		user, err := userRepository.GetById(ctx.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				logger.FromContext(ctx.Request.Context()).WithField("error", err).Error("Load user for access token failed")
			}
			unauthorized(ctx, "Invalid access token")
			return
		}

		ctx.Set(ContextUser, user)
		ctx.Set(ContextUserID, user.ID.Hex())
		ctx.Next()
	}
}

func accessToken(ctx *gin.Context) string {
	if cookie, err := ctx.Cookie(AccessTokenCookie); err == nil && cookie != "" {
		return cookie
	}
	authorization := ctx.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(authorization, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

func reason(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		switch {
		case ve.Errors&jwt.ValidationErrorMalformed != 0:
			return "token is malformed"
		case ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0:
			return "token is expired or not active yet"
		case ve.Errors&jwt.ValidationErrorSignatureInvalid != 0:
			return "token signature is invalid"
		}
	}
	return "token could not be verified"
}

func unauthorized(ctx *gin.Context, message string, details ...string) {
	ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorRes(http.StatusUnauthorized, message, details))
}
