package models

import (
	"time"

	"gorm.io/gorm"
)

type ArticleStatus string

const (
	StatusPending  ArticleStatus = "pending"
	StatusApproved ArticleStatus = "approved"
	StatusRejected ArticleStatus = "rejected"
)

// Article is a single submission. AuthorID never changes after creation and
// Status only moves through pending -> approved/rejected; an author edit puts
// it back to pending.
type Article struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	Title       string         `json:"title" gorm:"not null"`
	ContentText string         `json:"content_text" gorm:"type:text"`
	ImagePath   string         `json:"image_path"`
	VideoPath   string         `json:"video_path"`
	AuthorID    uint           `json:"author_id" gorm:"not null"`
	Author      User           `json:"author" gorm:"foreignKey:AuthorID"`
	Status      ArticleStatus  `json:"status" gorm:"default:'pending'"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
