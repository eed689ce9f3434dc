package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	"vidsocial/infrastructure/logger"
	"vidsocial/interfaces/middleware"
)

const (
	ErrorUnmarshal = "Error while unmarshal"
)

func respond(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, dto.NewRes(status, data, message))
}

// respondError renders err in the failure envelope. Server errors are logged
// with their cause, which never reaches the client.
func respondError(c *gin.Context, err error) {
	appErr := apperror.From(err)
	entry := logger.FromContext(c.Request.Context()).
		WithField("error", err).
		WithField("path", c.FullPath()).
		WithField("status", appErr.StatusCode)
	if appErr.StatusCode >= http.StatusInternalServerError {
		entry.Error(appErr.Message)
	} else {
		entry.Debug(appErr.Message)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, dto.NewErrorRes(appErr.StatusCode, appErr.Message, appErr.Errors))
}

func bindError(c *gin.Context, err error) {
	respondError(c, apperror.BadRequest(ErrorUnmarshal).WithDetails(bindingDetails(err)...).Wrap(err))
}

// actorOf returns the authenticated user id set by middleware.Auth.
func actorOf(c *gin.Context) (bson.ObjectID, bool) {
	id, ok := model.ParseID(c.GetString(middleware.ContextUserID))
	if !ok {
		respondError(c, apperror.Unauthorized("Unauthorized request"))
		return bson.NilObjectID, false
	}
	return id, true
}
