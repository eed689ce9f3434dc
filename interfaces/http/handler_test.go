package http_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"vidsocial/domain/apperror"
	"vidsocial/domain/dto"
	"vidsocial/domain/model"
	httpHandler "vidsocial/interfaces/http"
	"vidsocial/interfaces/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := httpHandler.RegisterValidators(); err != nil {
		panic(err)
	}
}

type MockUserUsecase struct{ mock.Mock }

func (m *MockUserUsecase) Register(ctx context.Context, req dto.ReqRegister) (model.User, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserUsecase) Login(ctx context.Context, req dto.ReqLogin) (dto.ResLogin, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.ResLogin), args.Error(1)
}

func (m *MockUserUsecase) Current(ctx context.Context, actor bson.ObjectID) (model.User, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateAccount(ctx context.Context, actor bson.ObjectID, req dto.ReqUpdateAccount) (model.User, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserUsecase) ChannelProfile(ctx context.Context, viewer bson.ObjectID, userName string) (model.ChannelProfile, error) {
	args := m.Called(ctx, viewer, userName)
	return args.Get(0).(model.ChannelProfile), args.Error(1)
}

type MockVideoUsecase struct{ mock.Mock }

func (m *MockVideoUsecase) List(ctx context.Context, req dto.ReqVideoList) (dto.ResVideoList, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.ResVideoList), args.Error(1)
}

func (m *MockVideoUsecase) Publish(ctx context.Context, actor bson.ObjectID, req dto.ReqVideoPublish) (model.Video, error) {
	args := m.Called(ctx, actor, req)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoUsecase) Get(ctx context.Context, videoID string) (model.Video, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoUsecase) Update(ctx context.Context, actor bson.ObjectID, videoID string, req dto.ReqVideoUpdate) (model.Video, error) {
	args := m.Called(ctx, actor, videoID, req)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoUsecase) Delete(ctx context.Context, actor bson.ObjectID, videoID string) error {
	return m.Called(ctx, actor, videoID).Error(0)
}

func (m *MockVideoUsecase) TogglePublish(ctx context.Context, actor bson.ObjectID, videoID string) (model.Video, error) {
	args := m.Called(ctx, actor, videoID)
	return args.Get(0).(model.Video), args.Error(1)
}

func (m *MockVideoUsecase) IncrementViews(ctx context.Context, videoID string) (model.Video, error) {
	args := m.Called(ctx, videoID)
	return args.Get(0).(model.Video), args.Error(1)
}

type MockTweetUsecase struct{ mock.Mock }

func (m *MockTweetUsecase) Create(ctx context.Context, actor bson.ObjectID, content string) (model.Tweet, error) {
	args := m.Called(ctx, actor, content)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetUsecase) List(ctx context.Context, viewer bson.ObjectID) ([]model.Tweet, error) {
	args := m.Called(ctx, viewer)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetUsecase) ListByUser(ctx context.Context, viewer bson.ObjectID, userID string) ([]model.Tweet, error) {
	args := m.Called(ctx, viewer, userID)
	return args.Get(0).([]model.Tweet), args.Error(1)
}

func (m *MockTweetUsecase) Update(ctx context.Context, actor bson.ObjectID, tweetID, content string) (model.Tweet, error) {
	args := m.Called(ctx, actor, tweetID, content)
	return args.Get(0).(model.Tweet), args.Error(1)
}

func (m *MockTweetUsecase) Delete(ctx context.Context, actor bson.ObjectID, tweetID string) error {
	return m.Called(ctx, actor, tweetID).Error(0)
}

// withActor stands in for middleware.Auth.
func withActor(id bson.ObjectID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id.Hex())
		c.Next()
	}
}

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestUserHandler_LoginSetsCookie(t *testing.T) {
	uc := new(MockUserUsecase)
	req := dto.ReqLogin{UserName: "alice", Password: "secret"}
	uc.On("Login", mock.Anything, req).Return(dto.ResLogin{AccessToken: "tok", User: model.User{UserName: "alice"}}, nil)
	h := httpHandler.NewUserHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1), httpHandler.CookieOptions{TTL: time.Hour})

	r := gin.New()
	r.POST("/login", h.Login)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"secret"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "User logged in successfully", env.Message)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.AccessTokenCookie, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)
	uc.AssertExpectations(t)
}

func TestUserHandler_LoginMalformedBody(t *testing.T) {
	uc := new(MockUserUsecase)
	h := httpHandler.NewUserHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1), httpHandler.CookieOptions{})

	r := gin.New()
	r.POST("/login", h.Login)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, httpHandler.ErrorUnmarshal, env.Message)
	assert.NotEmpty(t, env.Errors)
	uc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestUserHandler_RegisterMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("username", "alice"))
	require.NoError(t, mw.WriteField("email", "alice@example.com"))
	require.NoError(t, mw.WriteField("fullName", "Alice"))
	require.NoError(t, mw.WriteField("password", "pw"))
	part, err := mw.CreateFormFile("avatar", "Me.PNG")
	require.NoError(t, err)
	_, err = part.Write([]byte("png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	uc := new(MockUserUsecase)
	uc.On("Register", mock.Anything, mock.MatchedBy(func(req dto.ReqRegister) bool {
		if req.UserName != "alice" || req.CoverImagePath != "" || !strings.HasSuffix(req.AvatarPath, ".png") {
			return false
		}
		data, err := os.ReadFile(req.AvatarPath)
		return err == nil && string(data) == "png"
	})).Return(model.User{UserName: "alice"}, nil)
	h := httpHandler.NewUserHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1), httpHandler.CookieOptions{})

	r := gin.New()
	r.POST("/register", h.Register)
	req := httptest.NewRequest(http.MethodPost, "/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestUserHandler_RegisterRejectsOversizeUpload(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("coverImage", "big.jpg")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'x'}, 2<<20))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	uc := new(MockUserUsecase)
	h := httpHandler.NewUserHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1), httpHandler.CookieOptions{})
	r := gin.New()
	r.POST("/register", h.Register)
	req := httptest.NewRequest(http.MethodPost, "/register", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_CurrentUserRequiresActor(t *testing.T) {
	uc := new(MockUserUsecase)
	h := httpHandler.NewUserHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1), httpHandler.CookieOptions{})
	r := gin.New()
	r.GET("/me", h.CurrentUser)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized request", decode(t, w).Message)
}

func TestVideoHandler_ListQueryValidation(t *testing.T) {
	uc := new(MockVideoUsecase)
	h := httpHandler.NewVideoHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1))
	r := gin.New()
	r.GET("/videos", h.List)

	tests := []struct {
		query  string
		detail string
	}{
		{"userId=nope", "userID must be a valid id"},
		{"sortType=sideways", "sortType must be one of asc desc"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos?"+tt.query, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, []string{tt.detail}, decode(t, w).Errors)
		})
	}
	uc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestVideoHandler_ListPassesQuery(t *testing.T) {
	owner := bson.NewObjectID()
	uc := new(MockVideoUsecase)
	want := dto.ReqVideoList{Page: 2, Limit: 5, Query: "go", SortBy: "views", SortType: "asc", UserID: owner.Hex()}
	uc.On("List", mock.Anything, want).Return(dto.ResVideoList{Videos: []model.Video{}, Page: dto.Page{Page: 2, Limit: 5}}, nil)
	h := httpHandler.NewVideoHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1))
	r := gin.New()
	r.GET("/videos", h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos?page=2&limit=5&query=go&sortBy=views&sortType=asc&userId="+owner.Hex(), nil))

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestVideoHandler_GetNotFound(t *testing.T) {
	uc := new(MockVideoUsecase)
	uc.On("Get", mock.Anything, "abc").Return(model.Video{}, apperror.NotFound("Video not found"))
	h := httpHandler.NewVideoHandler(uc, httpHandler.NewSpooler(t.TempDir(), 1))
	r := gin.New()
	r.GET("/videos/:videoId", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/videos/abc", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "Video not found", env.Message)
	assert.Equal(t, []string{}, env.Errors)
}

func TestTweetHandler_InternalErrorHidesCause(t *testing.T) {
	actor := bson.NewObjectID()
	uc := new(MockTweetUsecase)
	uc.On("List", mock.Anything, actor).Return([]model.Tweet(nil), errors.New("connection reset by peer"))
	h := httpHandler.NewTweetHandler(uc)
	r := gin.New()
	r.GET("/tweets", withActor(actor), h.List)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/tweets", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestTweetHandler_CreateAndDelete(t *testing.T) {
	actor := bson.NewObjectID()
	tweet := model.Tweet{ID: bson.NewObjectID(), Content: "hello", OwnerID: actor}
	uc := new(MockTweetUsecase)
	uc.On("Create", mock.Anything, actor, "hello").Return(tweet, nil)
	uc.On("Delete", mock.Anything, actor, tweet.ID.Hex()).Return(nil)
	h := httpHandler.NewTweetHandler(uc)
	r := gin.New()
	r.POST("/tweets", withActor(actor), h.Create)
	r.DELETE("/tweets/:tweetId", withActor(actor), h.Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tweets", strings.NewReader(`{"content":"hello"}`)))
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Tweet
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, tweet.ID, created.ID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/tweets/"+tweet.ID.Hex(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tweet deleted successfully", decode(t, w).Message)
	uc.AssertExpectations(t)
}

func TestHealthHandler(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: refused") }

	tests := []struct {
		name    string
		checks  map[string]httpHandler.Check
		status  int
		message string
		report  map[string]string
	}{
		{"nil check skipped", map[string]httpHandler.Check{"mongo": ok, "redis": nil}, http.StatusOK, "ok",
			map[string]string{"mongo": "ok"}},
		{"redis down", map[string]httpHandler.Check{"mongo": ok, "redis": down}, http.StatusServiceUnavailable, "degraded",
			map[string]string{"mongo": "ok", "redis": "dial tcp: refused"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/healthz", httpHandler.NewHealthHandler(tt.checks).Healthz)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			assert.Equal(t, tt.status, w.Code)
			env := decode(t, w)
			assert.Equal(t, tt.message, env.Message)
			var report map[string]string
			require.NoError(t, json.Unmarshal(env.Data, &report))
			assert.Equal(t, tt.report, report)
		})
	}
}
