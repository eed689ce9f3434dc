package dto

import "vidsocial/domain/model"

type ReqContent struct {
	Content string `json:"content"`
}

type ReqPage struct {
	Page  int64 `form:"page"  url:"page,omitempty"`
	Limit int64 `form:"limit" url:"limit,omitempty"`
}

type ResCommentList struct {
	Comments []model.Comment `json:"comments"`
	Page
}

type ResSubscriptionToggle struct {
	IsSubscribed bool `json:"isSubscribed"`
}
