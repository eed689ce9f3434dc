package dto

import "vidsocial/domain/model"

// ReqVideoList is bound from the query string of GET /videos.
type ReqVideoList struct {
	Page     int64  `form:"page"     url:"page,omitempty"`
	Limit    int64  `form:"limit"    url:"limit,omitempty"`
	Query    string `form:"query"    url:"query,omitempty"`
	SortBy   string `form:"sortBy"   url:"sortBy,omitempty"`
	SortType string `form:"sortType" url:"sortType,omitempty"    binding:"omitempty,oneof=asc desc"`
	UserID   string `form:"userId"   url:"userId,omitempty"      binding:"omitempty,objectid"`
}

// ReqVideoPublish paths point at spooled multipart parts.
type ReqVideoPublish struct {
	Title         string `form:"title"`
	Description   string `form:"description"`
	VideoPath     string `form:"-"`
	ThumbnailPath string `form:"-"`
}

// ReqVideoUpdate leaves a field untouched when it is nil.
type ReqVideoUpdate struct {
	Title         *string `form:"title"`
	Description   *string `form:"description"`
	ThumbnailPath string  `form:"-"`
}

type ResVideoList struct {
	Videos []model.Video `json:"videos"`
	Page
}
