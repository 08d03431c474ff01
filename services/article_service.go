package services

import (
	"errors"

	"journal-cms/models"
	"journal-cms/policy"
	"journal-cms/repositories"
	"journal-cms/storage"

	"gorm.io/gorm"
)

// ArticleService is the lifecycle engine: every status transition an article
// can take goes through here, guarded by the policy package.
type ArticleService interface {
	Create(req models.CreateArticleRequest, image, video *models.Upload, actor *models.User) (*models.Article, error)
	Get(id uint, actor *models.User) (*models.Article, error)
	ListApproved(limit int) ([]models.Article, error)
	ListByAuthor(actor *models.User) ([]models.Article, error)
	ListPending() ([]models.Article, error)
	ListAll(params models.ArticleListParams) ([]models.Article, int64, error)
	Update(id uint, req models.UpdateArticleRequest, actor *models.User) (*models.Article, error)
	Delete(id uint, actor *models.User) error
	Approve(id uint, actor *models.User) (*models.Article, error)
	Reject(id uint, actor *models.User) (*models.Article, error)
	Stats() (*models.AdminStats, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
	media       storage.Store
}

func NewArticleService(articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository, media storage.Store) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		media:       media,
	}
}

// Create stores a new submission. It always enters the lifecycle as pending,
// whatever the actor's role. Media files are written before the record; a
// record failure can leave an orphaned file behind.
func (s *articleService) Create(req models.CreateArticleRequest, image, video *models.Upload, actor *models.User) (*models.Article, error) {
	if !policy.Can(actor, nil, policy.ActionCreate) {
		return nil, models.ErrForbidden
	}
	if req.Title == "" {
		return nil, models.ErrTitleRequired
	}

	article := &models.Article{
		Title:       req.Title,
		ContentText: req.ContentText,
		AuthorID:    actor.ID,
		Status:      models.StatusPending,
	}

	if image != nil && image.Filename != "" {
		path, err := s.media.Save(storage.KindImage, image.Filename, image.Data)
		if err != nil {
			return nil, err
		}
		article.ImagePath = path
	}

	if video != nil && video.Filename != "" {
		path, err := s.media.Save(storage.KindVideo, video.Filename, video.Data)
		if err != nil {
			return nil, err
		}
		article.VideoPath = path
	}

	if err := s.articleRepo.Create(article); err != nil {
		return nil, err
	}

	return article, nil
}

// Get applies the visibility rule. An article the actor may not see is
// reported exactly like one that does not exist.
func (s *articleService) Get(id uint, actor *models.User) (*models.Article, error) {
	article, err := s.getArticle(id)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, article, policy.ActionView) {
		return nil, models.ErrArticleNotFound
	}

	return article, nil
}

func (s *articleService) ListApproved(limit int) ([]models.Article, error) {
	return s.articleRepo.GetApproved(limit)
}

func (s *articleService) ListByAuthor(actor *models.User) ([]models.Article, error) {
	if actor == nil {
		return nil, models.ErrForbidden
	}
	return s.articleRepo.GetByAuthor(actor.ID)
}

func (s *articleService) ListPending() ([]models.Article, error) {
	return s.articleRepo.GetByStatus(models.StatusPending)
}

func (s *articleService) ListAll(params models.ArticleListParams) ([]models.Article, int64, error) {
	return s.articleRepo.GetList(params)
}

// Update edits content. A non-admin owner's edit re-enters pending so the
// change is reviewed again before publication; an admin edit keeps the
// current status.
func (s *articleService) Update(id uint, req models.UpdateArticleRequest, actor *models.User) (*models.Article, error) {
	article, err := s.getArticle(id)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, article, policy.ActionEdit) {
		return nil, models.ErrForbidden
	}
	if req.Title == "" {
		return nil, models.ErrTitleRequired
	}

	article.Title = req.Title
	article.ContentText = req.ContentText
	if !actor.IsAdmin() {
		article.Status = models.StatusPending
	}

	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return article, nil
}

// Delete removes the record and its media. Media removal is best effort; a
// missing file never blocks the delete.
func (s *articleService) Delete(id uint, actor *models.User) error {
	article, err := s.getArticle(id)
	if err != nil {
		return err
	}

	if !policy.Can(actor, article, policy.ActionDelete) {
		return models.ErrForbidden
	}

	s.media.Remove(article.ImagePath)
	s.media.Remove(article.VideoPath)

	return s.articleRepo.Delete(article.ID)
}

func (s *articleService) Approve(id uint, actor *models.User) (*models.Article, error) {
	return s.moderate(id, actor, policy.ActionApprove, models.StatusApproved)
}

func (s *articleService) Reject(id uint, actor *models.User) (*models.Article, error) {
	return s.moderate(id, actor, policy.ActionReject, models.StatusRejected)
}

func (s *articleService) moderate(id uint, actor *models.User, action policy.Action, to models.ArticleStatus) (*models.Article, error) {
	article, err := s.getArticle(id)
	if err != nil {
		return nil, err
	}

	if !policy.Can(actor, article, action) {
		if !policy.CanModerate(actor) {
			return nil, models.ErrForbidden
		}
		// Right role, wrong state: the article was already processed.
		return nil, models.ErrAlreadyModerated
	}

	article.Status = to
	if err := s.articleRepo.Update(article); err != nil {
		return nil, err
	}

	return article, nil
}

func (s *articleService) Stats() (*models.AdminStats, error) {
	stats := &models.AdminStats{}

	var err error
	if stats.Pending, err = s.articleRepo.CountByStatus(models.StatusPending); err != nil {
		return nil, err
	}
	if stats.Approved, err = s.articleRepo.CountByStatus(models.StatusApproved); err != nil {
		return nil, err
	}
	if stats.Rejected, err = s.articleRepo.CountByStatus(models.StatusRejected); err != nil {
		return nil, err
	}
	if stats.TotalUsers, err = s.userRepo.Count(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *articleService) getArticle(id uint) (*models.Article, error) {
	article, err := s.articleRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrArticleNotFound
		}
		return nil, err
	}
	return article, nil
}
