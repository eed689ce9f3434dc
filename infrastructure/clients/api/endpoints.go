package api

import (
	"context"
	"net/http"
	"net/url"

	"vidsocial/domain/dto"
	"vidsocial/domain/model"
)

func (c *Client) Register(ctx context.Context, req dto.ReqRegister) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPost, "users/register", nil, req, &user)
	return user, err
}

// Login stores the returned access token for subsequent calls.
func (c *Client) Login(ctx context.Context, req dto.ReqLogin) (dto.ResLogin, error) {
	var res dto.ResLogin
	if err := c.do(ctx, http.MethodPost, "users/login", nil, req, &res); err != nil {
		return dto.ResLogin{}, err
	}
	c.SetToken(res.AccessToken)
	return res, nil
}

func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "users/logout", nil, nil, nil)
	c.SetToken("")
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodGet, "users/current-user", nil, nil, &user)
	return user, err
}

func (c *Client) UpdateAccount(ctx context.Context, req dto.ReqUpdateAccount) (model.User, error) {
	var user model.User
	err := c.do(ctx, http.MethodPatch, "users/update-account", nil, req, &user)
	return user, err
}

func (c *Client) ChannelProfile(ctx context.Context, userName string) (model.ChannelProfile, error) {
	var profile model.ChannelProfile
	err := c.do(ctx, http.MethodGet, "users/c/"+url.PathEscape(userName), nil, nil, &profile)
	return profile, err
}

func (c *Client) ListVideos(ctx context.Context, req dto.ReqVideoList) (dto.ResVideoList, error) {
	var res dto.ResVideoList
	err := c.do(ctx, http.MethodGet, "videos", req, nil, &res)
	return res, err
}

func (c *Client) GetVideo(ctx context.Context, videoID string) (model.Video, error) {
	var video model.Video
	err := c.do(ctx, http.MethodGet, "videos/"+url.PathEscape(videoID), nil, nil, &video)
	return video, err
}

func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	return c.do(ctx, http.MethodDelete, "videos/"+url.PathEscape(videoID), nil, nil, nil)
}

func (c *Client) TogglePublish(ctx context.Context, videoID string) (model.Video, error) {
	var video model.Video
	err := c.do(ctx, http.MethodPatch, "videos/toggle/publish/"+url.PathEscape(videoID), nil, nil, &video)
	return video, err
}

func (c *Client) IncrementViews(ctx context.Context, videoID string) (model.Video, error) {
	var video model.Video
	err := c.do(ctx, http.MethodPatch, "videos/views/"+url.PathEscape(videoID), nil, nil, &video)
	return video, err
}

func (c *Client) ListTweets(ctx context.Context) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := c.do(ctx, http.MethodGet, "tweets", nil, nil, &tweets)
	return tweets, err
}

func (c *Client) ListUserTweets(ctx context.Context, userID string) ([]model.Tweet, error) {
	var tweets []model.Tweet
	err := c.do(ctx, http.MethodGet, "tweets/user/"+url.PathEscape(userID), nil, nil, &tweets)
	return tweets, err
}

func (c *Client) CreateTweet(ctx context.Context, content string) (model.Tweet, error) {
	var tweet model.Tweet
	err := c.do(ctx, http.MethodPost, "tweets", nil, dto.ReqContent{Content: content}, &tweet)
	return tweet, err
}

func (c *Client) UpdateTweet(ctx context.Context, tweetID, content string) (model.Tweet, error) {
	var tweet model.Tweet
	err := c.do(ctx, http.MethodPatch, "tweets/"+url.PathEscape(tweetID), nil, dto.ReqContent{Content: content}, &tweet)
	return tweet, err
}

func (c *Client) DeleteTweet(ctx context.Context, tweetID string) error {
	return c.do(ctx, http.MethodDelete, "tweets/"+url.PathEscape(tweetID), nil, nil, nil)
}

func (c *Client) ListComments(ctx context.Context, videoID string, page dto.ReqPage) (dto.ResCommentList, error) {
	var res dto.ResCommentList
	err := c.do(ctx, http.MethodGet, "comments/"+url.PathEscape(videoID), page, nil, &res)
	return res, err
}

func (c *Client) AddComment(ctx context.Context, videoID, content string) (model.Comment, error) {
	var comment model.Comment
	err := c.do(ctx, http.MethodPost, "comments/"+url.PathEscape(videoID), nil, dto.ReqContent{Content: content}, &comment)
	return comment, err
}

func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (model.Comment, error) {
	var comment model.Comment
	err := c.do(ctx, http.MethodPatch, "comments/c/"+url.PathEscape(commentID), nil, dto.ReqContent{Content: content}, &comment)
	return comment, err
}

func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.do(ctx, http.MethodDelete, "comments/c/"+url.PathEscape(commentID), nil, nil, nil)
}

var likePaths = map[model.LikeKind]string{
	model.LikeKindVideo:   "likes/toggle/v/",
	model.LikeKindComment: "likes/toggle/c/",
	model.LikeKindTweet:   "likes/toggle/t/",
}

func (c *Client) ToggleLike(ctx context.Context, kind model.LikeKind, subjectID string) (model.LikeToggle, error) {
	var res model.LikeToggle
	err := c.do(ctx, http.MethodPost, likePaths[kind]+url.PathEscape(subjectID), nil, nil, &res)
	return res, err
}

func (c *Client) LikedVideos(ctx context.Context) ([]model.LikedVideo, error) {
	var videos []model.LikedVideo
	err := c.do(ctx, http.MethodGet, "likes", nil, nil, &videos)
	return videos, err
}

func (c *Client) ToggleSubscription(ctx context.Context, channelID string) (bool, error) {
	var res dto.ResSubscriptionToggle
	err := c.do(ctx, http.MethodPost, "subscriptions/c/"+url.PathEscape(channelID), nil, nil, &res)
	return res.IsSubscribed, err
}

func (c *Client) Subscribers(ctx context.Context, channelID string) ([]model.Owner, error) {
	var owners []model.Owner
	err := c.do(ctx, http.MethodGet, "subscriptions/c/"+url.PathEscape(channelID)+"/subscribers", nil, nil, &owners)
	return owners, err
}

func (c *Client) SubscribedChannels(ctx context.Context) ([]model.Owner, error) {
	var owners []model.Owner
	err := c.do(ctx, http.MethodGet, "subscriptions", nil, nil, &owners)
	return owners, err
}
