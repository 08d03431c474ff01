package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"journal-cms/helper"
	"journal-cms/middleware"
	"journal-cms/models"
	"journal-cms/services"

	"github.com/gin-gonic/gin"
)

// homePageSize is how many recent approved articles the landing page shows.
const homePageSize = 6

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, httpHelper *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: httpHelper}
}

func (h *ArticleHandler) Home(c *gin.Context) {
	articles, err := h.articleService.ListApproved(homePageSize)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", articles)
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	articles, err := h.articleService.ListApproved(0)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", articles)
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	actor := middleware.CurrentUser(c)

	article, err := h.articleService.Get(uint(id), actor)
	if err != nil {
		// Not-found and not-allowed are deliberately the same answer.
		h.Helper.SendNotFoundError(c, models.ErrArticleNotFound.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) Dashboard(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	articles, err := h.articleService.ListByAuthor(actor)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", articles)
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req models.CreateArticleRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	image, imageClose, err := formUpload(c, "image")
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	defer imageClose()

	video, videoClose, err := formUpload(c, "video")
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}
	defer videoClose()

	article, err := h.articleService.Create(req, image, video, actor)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Article created, awaiting moderation", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	article, err := h.articleService.Update(uint(id), req, actor)
	if err != nil {
		h.sendArticleError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.articleService.Delete(uint(id), actor); err != nil {
		h.sendArticleError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article deleted", h.Helper.EmptyJsonMap())
}

// ModeratorApprove is the moderator-facing approval route; admins pass too.
func (h *ArticleHandler) ModeratorApprove(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	article, err := h.articleService.Approve(uint(id), actor)
	if err != nil {
		h.sendArticleError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article approved", article)
}

func (h *ArticleHandler) sendArticleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrArticleNotFound):
		h.Helper.SendNotFoundError(c, err.Error(), h.Helper.EmptyJsonMap())
	case errors.Is(err, models.ErrForbidden):
		h.Helper.SendUnauthorizedError(c, err.Error(), h.Helper.EmptyJsonMap())
	default:
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
	}
}

// formUpload opens an optional multipart file field. A missing field is not
// an error; the returned closer is always safe to defer.
func formUpload(c *gin.Context, field string) (*models.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		// The field being absent, or the request not being multipart at all,
		// both mean "not provided". Anything else is a real parse failure.
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}
	return openUpload(header)
}

func openUpload(header *multipart.FileHeader) (*models.Upload, func(), error) {
	if header == nil || header.Filename == "" {
		return nil, func() {}, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return &models.Upload{Filename: header.Filename, Data: file}, func() { file.Close() }, nil
}
