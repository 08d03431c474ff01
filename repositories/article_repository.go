package repositories

import (
	"journal-cms/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id uint) (*models.Article, error)
	GetApproved(limit int) ([]models.Article, error)
	GetByAuthor(authorID uint) ([]models.Article, error)
	GetByStatus(status models.ArticleStatus) ([]models.Article, error)
	GetList(params models.ArticleListParams) ([]models.Article, int64, error)
	Update(article *models.Article) error
	Delete(id uint) error
	CountByStatus(status models.ArticleStatus) (int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id uint) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").First(&article, id).Error
	return &article, err
}

func (r *articleRepository) GetApproved(limit int) ([]models.Article, error) {
	var articles []models.Article
	query := r.db.Preload("Author").
		Where("status = ?", models.StatusApproved).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetByAuthor(authorID uint) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetByStatus(status models.ArticleStatus) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.Preload("Author").
		Where("status = ?", status).
		Order("created_at desc").
		Find(&articles).Error
	return articles, err
}

func (r *articleRepository) GetList(params models.ArticleListParams) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{}).Preload("Author")

	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").
		Offset(offset).
		Limit(params.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(article *models.Article) error {
	return r.db.Save(article).Error
}

func (r *articleRepository) Delete(id uint) error {
	return r.db.Delete(&models.Article{}, id).Error
}

func (r *articleRepository) CountByStatus(status models.ArticleStatus) (int64, error) {
	var count int64
	err := r.db.Model(&models.Article{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
