package models

import "io"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=80"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateArticleRequest is bound from a multipart form; the image and video
// parts are read separately by the handler.
type CreateArticleRequest struct {
	Title       string `form:"title" binding:"required,min=1,max=200"`
	ContentText string `form:"content_text"`
}

type UpdateArticleRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	ContentText string `json:"content_text"`
}

// Upload carries one file part of a submission into the service layer.
type Upload struct {
	Filename string
	Data     io.Reader
}

type ArticleListParams struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=10"`
}

type AdminStats struct {
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	TotalUsers int64 `json:"total_users"`
}
