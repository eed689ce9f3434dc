package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/model"
	"vidsocial/usecase"
)

type ILikeHandler interface {
	ToggleVideo(c *gin.Context)
	ToggleComment(c *gin.Context)
	ToggleTweet(c *gin.Context)
	LikedVideos(c *gin.Context)
}

type LikeHandler struct {
	likeUsecase usecase.ILikeUsecase
}

func NewLikeHandler(likeUsecase usecase.ILikeUsecase) ILikeHandler {
	return &LikeHandler{likeUsecase: likeUsecase}
}

func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, model.LikeKindVideo, "videoId")
}

func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, model.LikeKindComment, "commentId")
}

func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, model.LikeKindTweet, "tweetId")
}

func (h *LikeHandler) toggle(c *gin.Context, kind model.LikeKind, param string) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	res, err := h.likeUsecase.Toggle(c.Request.Context(), actor, kind, c.Param(param))
	if err != nil {
		respondError(c, err)
		return
	}
	message := "Like removed successfully"
	if res.IsLiked {
		message = "Like added successfully"
	}
	respond(c, http.StatusOK, res, message)
}

func (h *LikeHandler) LikedVideos(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	videos, err := h.likeUsecase.LikedVideos(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "Liked videos fetched successfully")
}
