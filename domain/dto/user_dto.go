package dto

import "vidsocial/domain/model"

// ReqRegister accepts both JSON and multipart bodies. Avatar and cover image
// paths are local spool files filled in by the handler.
type ReqRegister struct {
	UserName       string `json:"username" form:"username"`
	Email          string `json:"email"    form:"email"`
	FullName       string `json:"fullName" form:"fullName"`
	Password       string `json:"password" form:"password"`
	AvatarPath     string `json:"-"        form:"-"`
	CoverImagePath string `json:"-"        form:"-"`
}

type ReqLogin struct {
	Email    string `json:"email"`
	UserName string `json:"username"`
	Password string `json:"password"`
}

type ReqUpdateAccount struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type ResLogin struct {
	User        model.User `json:"user"`
	AccessToken string     `json:"accessToken"`
}
