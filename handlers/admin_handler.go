package handlers

import (
	"errors"
	"strconv"

	"journal-cms/helper"
	"journal-cms/middleware"
	"journal-cms/models"
	"journal-cms/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin dashboard: stats, the moderation queue and
// the member list. All routes behind it are gated to the admin role.
type AdminHandler struct {
	articleService services.ArticleService
	authService    services.AuthService
	Helper         *helper.HTTPHelper
}

func NewAdminHandler(articleService services.ArticleService, authService services.AuthService, httpHelper *helper.HTTPHelper) *AdminHandler {
	return &AdminHandler{
		articleService: articleService,
		authService:    authService,
		Helper:         httpHelper,
	}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.articleService.Stats()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", stats)
}

func (h *AdminHandler) Pending(c *gin.Context) {
	articles, err := h.articleService.ListPending()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", articles)
}

func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, h.articleService.Approve, "Article approved")
}

func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, h.articleService.Reject, "Article rejected")
}

func (h *AdminHandler) moderate(c *gin.Context, transition func(uint, *models.User) (*models.Article, error), message string) {
	actor := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid article ID", h.Helper.EmptyJsonMap())
		return
	}

	article, err := transition(uint(id), actor)
	if err != nil {
		if errors.Is(err, models.ErrArticleNotFound) {
			h.Helper.SendNotFoundError(c, err.Error(), h.Helper.EmptyJsonMap())
			return
		}
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, message, article)
}

func (h *AdminHandler) AllArticles(c *gin.Context) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "Error ", err.Error())
		return
	}

	if params.Page == 0 {
		params.Page = 1
	}
	if params.Limit == 0 {
		params.Limit = 10
	}

	articles, total, err := h.articleService.ListAll(params)
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", map[string]interface{}{
		"articles":   articles,
		"pagination": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *AdminHandler) Members(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}
