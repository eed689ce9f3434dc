package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/dto"
	"vidsocial/usecase"
)

type ICommentHandler interface {
	List(c *gin.Context)
	Add(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type CommentHandler struct {
	commentUsecase usecase.ICommentUsecase
}

func NewCommentHandler(commentUsecase usecase.ICommentUsecase) ICommentHandler {
	return &CommentHandler{commentUsecase: commentUsecase}
}

// List handles GET /comments/:videoId?page&limit
func (h *CommentHandler) List(c *gin.Context) {
	var req dto.ReqPage
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.commentUsecase.List(c.Request.Context(), c.Param("videoId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Comments fetched successfully")
}

func (h *CommentHandler) Add(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req dto.ReqContent
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	comment, err := h.commentUsecase.Add(c.Request.Context(), actor, c.Param("videoId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "Comment added successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req dto.ReqContent
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	comment, err := h.commentUsecase.Update(c.Request.Context(), actor, c.Param("commentId"), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "Comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.commentUsecase.Delete(c.Request.Context(), actor, c.Param("commentId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Comment deleted successfully")
}
