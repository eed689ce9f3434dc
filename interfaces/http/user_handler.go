package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"vidsocial/domain/dto"
	"vidsocial/interfaces/middleware"
	"vidsocial/usecase"
)

type IUserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	CurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	ChannelProfile(c *gin.Context)
}

// CookieOptions controls the accessToken cookie set on login.
type CookieOptions struct {
	Secure bool
	TTL    time.Duration
}

type UserHandler struct {
	userUsecase usecase.IUserUsecase
	spooler     *Spooler
	cookie      CookieOptions
}

func NewUserHandler(userUsecase usecase.IUserUsecase, spooler *Spooler, cookie CookieOptions) IUserHandler {
	return &UserHandler{userUsecase: userUsecase, spooler: spooler, cookie: cookie}
}

// Register accepts JSON or multipart with optional avatar and coverImage parts.
func (userHandler *UserHandler) Register(c *gin.Context) {
	var req dto.ReqRegister
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	paths, err := userHandler.spooler.SpoolAll(c, "avatar", "coverImage")
	if err != nil {
		respondError(c, err)
		return
	}
	req.AvatarPath, req.CoverImagePath = paths[0], paths[1]

	user, err := userHandler.userUsecase.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, user, "User registered successfully")
}

func (userHandler *UserHandler) Login(c *gin.Context) {
	var req dto.ReqLogin
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := userHandler.userUsecase.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, res.AccessToken, int(userHandler.cookie.TTL.Seconds()), "/", "", userHandler.cookie.Secure, true)
	respond(c, http.StatusOK, res, "User logged in successfully")
}

func (userHandler *UserHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", userHandler.cookie.Secure, true)
	respond(c, http.StatusOK, gin.H{}, "User logged out")
}

func (userHandler *UserHandler) CurrentUser(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	user, err := userHandler.userUsecase.Current(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Current user fetched successfully")
}

func (userHandler *UserHandler) UpdateAccount(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	var req dto.ReqUpdateAccount
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	user, err := userHandler.userUsecase.UpdateAccount(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "Account details updated successfully")
}

func (userHandler *UserHandler) ChannelProfile(c *gin.Context) {
	actor, ok := actorOf(c)
	if !ok {
		return
	}
	profile, err := userHandler.userUsecase.ChannelProfile(c.Request.Context(), actor, c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusOK, profile, "User channel fetched successfully")
}
