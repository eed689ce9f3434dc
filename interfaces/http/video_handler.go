package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/dto"
	"vidsocial/usecase"
)

type IVideoHandler interface {
	List(c *gin.Context)
	Publish(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	TogglePublish(c *gin.Context)
	IncrementViews(c *gin.Context)
}

type VideoHandler struct {
	videoUsecase usecase.IVideoUsecase
	spooler      *Spooler
}

func NewVideoHandler(videoUsecase usecase.IVideoUsecase, spooler *Spooler) IVideoHandler {
	return &VideoHandler{videoUsecase: videoUsecase, spooler: spooler}
}

// List handles GET /videos?page&limit&query&sortBy&sortType&userId
func (h *VideoHandler) List(c *gin.Context) {
	var req dto.ReqVideoList
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.videoUsecase.List(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, res, "Videos fetched successfully")
}

// Publish handles multipart POST /videos with videoFile and thumbnail parts.
func (h *VideoHandler) Publish(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	paths, err := h.spooler.SpoolAll(c, "videoFile", "thumbnail")
	if err != nil {
		respondError(c, err)
		return
	}
	req := dto.ReqVideoPublish{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		VideoPath:     paths[0],
		ThumbnailPath: paths[1],
	}
	video, err := h.videoUsecase.Publish(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "Video published successfully")
}

func (h *VideoHandler) Get(c *gin.Context) {
	video, err := h.videoUsecase.Get(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video fetched successfully")
}

// Update handles multipart PATCH /videos/:videoId. Omitted form fields stay unchanged.
func (h *VideoHandler) Update(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	thumbnail, err := h.spooler.Spool(c, "thumbnail")
	if err != nil {
		respondError(c, err)
		return
	}
	req := dto.ReqVideoUpdate{ThumbnailPath: thumbnail}
	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		req.Description = &v
	}
	video, err := h.videoUsecase.Update(c.Request.Context(), actor, c.Param("videoId"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	if err := h.videoUsecase.Delete(c.Request.Context(), actor, c.Param("videoId")); err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{}, "Video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	video, err := h.videoUsecase.TogglePublish(c.Request.Context(), actor, c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video publish status toggled successfully")
}

func (h *VideoHandler) IncrementViews(c *gin.Context) {
	video, err := h.videoUsecase.IncrementViews(c.Request.Context(), c.Param("videoId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "Video views incremented")
}
