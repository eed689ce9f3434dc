package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/dto"
	"vidsocial/usecase"
)

type ITweetHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	ListByUser(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type TweetHandler struct {
	tweetUsecase usecase.ITweetUsecase
}

func NewTweetHandler(tweetUsecase usecase.ITweetUsecase) ITweetHandler {
	return &TweetHandler{tweetUsecase: tweetUsecase}
}

func (h *TweetHandler) Create(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req dto.ReqContent
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tweet, err := h.tweetUsecase.Create(c.Request.Context(), actor, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "Tweet created successfully")
}

func (h *TweetHandler) List(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	tweets, err := h.tweetUsecase.List(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweets, "Tweets fetched successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	tweets, err := h.tweetUsecase.ListByUser(c.Request.Context(), actor, c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweets, "User tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req dto.ReqContent
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	tweet, err := h.tweetUsecase.Update(c.Request.Context(), actor, c.Param("tweetId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "Tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.tweetUsecase.Delete(c.Request.Context(), actor, c.Param("tweetId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Tweet deleted successfully")
}
