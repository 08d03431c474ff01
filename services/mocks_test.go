package services

import (
	"context"
	"io"
	"path"
	"time"

	"github.com/stretchr/testify/mock"

	"journal-cms/models"
	"journal-cms/storage"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetAll() ([]models.User, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Count() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

// MockArticleRepository is a mock implementation of repositories.ArticleRepository.
type MockArticleRepository struct {
	mock.Mock
}

func (m *MockArticleRepository) Create(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) GetByID(id uint) (*models.Article, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetApproved(limit int) ([]models.Article, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByAuthor(authorID uint) ([]models.Article, error) {
	args := m.Called(authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetByStatus(status models.ArticleStatus) ([]models.Article, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Article), args.Error(1)
}

func (m *MockArticleRepository) GetList(params models.ArticleListParams) ([]models.Article, int64, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]models.Article), args.Get(1).(int64), args.Error(2)
}

func (m *MockArticleRepository) Update(article *models.Article) error {
	args := m.Called(article)
	return args.Error(0)
}

func (m *MockArticleRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockArticleRepository) CountByStatus(status models.ArticleStatus) (int64, error) {
	args := m.Called(status)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenStore is a mock implementation of auth.TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Blacklist(ctx context.Context, token string, ttl time.Duration) error {
	args := m.Called(ctx, token, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsBlacklisted(ctx context.Context, token string) bool {
	args := m.Called(ctx, token)
	return args.Bool(0)
}

// fakeMediaStore records calls instead of touching the filesystem.
type fakeMediaStore struct {
	saveErr error
	saved   []string
	removed []string
}

func (f *fakeMediaStore) Save(kind storage.Kind, filename string, src io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	relpath := path.Join("uploads", string(kind)+"s", filename)
	f.saved = append(f.saved, relpath)
	return relpath, nil
}

func (f *fakeMediaStore) Remove(relpath string) {
	if relpath != "" {
		f.removed = append(f.removed, relpath)
	}
}
