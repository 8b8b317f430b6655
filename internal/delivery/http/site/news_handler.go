package site

import (
	"errors"
	"net/http"

	"vuidokan-site/internal/delivery/http/response"
	"vuidokan-site/internal/domain"
	"vuidokan-site/internal/usecase"
	"vuidokan-site/pkg/apperror"
	"vuidokan-site/pkg/security"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	pages        pageRenderer
	newsUC       domain.NewsUsecase
	newsletterUC domain.NewsletterUsecase
	secLog       *security.SecurityLogger
}

// NewNewsHandler registers the news listing, article pages and the
// newsletter signup
func NewNewsHandler(r gin.IRouter, pages pageRenderer, newsUC domain.NewsUsecase, newsletterUC domain.NewsletterUsecase, secLog *security.SecurityLogger, limiter gin.HandlerFunc) {
	handler := &NewsHandler{
		pages:        pages,
		newsUC:       newsUC,
		newsletterUC: newsletterUC,
		secLog:       secLog,
	}

	news := r.Group("/news")
	{
		news.GET("", handler.List)
		news.GET("/category/:category", handler.Category)
		news.GET("/article/:id", handler.Article)
		news.POST("/newsletter", limiter, handler.Subscribe)
	}
}

func (h *NewsHandler) List(c *gin.Context) {
	h.renderList(c, usecase.CategoryAll)
}

func (h *NewsHandler) Category(c *gin.Context) {
	h.renderList(c, c.Param("category"))
}

func (h *NewsHandler) renderList(c *gin.Context, category string) {
	page, err := h.newsUC.ListNews(c.Request.Context(), category)
	if err != nil {
		h.pages.serverError(c, err)
		return
	}
	h.pages.render(c, http.StatusOK, "news.tmpl", "news", gin.H{
		"heading": "Tin tức",
		"news":    page,
	})
}

func (h *NewsHandler) Article(c *gin.Context) {
	article, err := h.newsUC.GetArticle(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			h.pages.notFound(c)
			return
		}
		h.pages.serverError(c, err)
		return
	}
	h.pages.render(c, http.StatusOK, "article.tmpl", "news", gin.H{
		"heading": article.Title,
		"article": article,
	})
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Tags         news
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        subscription  body      domain.NewsletterRequest  true  "Subscriber email"
// @Success      200           {object}  response.Response
// @Failure      400           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Router       /news/newsletter [post]
func (h *NewsHandler) Subscribe(c *gin.Context) {
	var req domain.NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		logMalformed(c, h.secLog, err)
		c.Error(apperror.BadRequest(domain.MsgMalformedBody))
		return
	}

	meta := domain.SubmissionMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	if _, err := h.newsletterUC.Subscribe(c.Request.Context(), &req, meta); err != nil {
		if errors.Is(err, domain.ErrMissingField) || errors.Is(err, domain.ErrInvalidEmailShape) {
			c.Error(apperror.Invalid(domain.MsgNewsletterInvalidEmail, err))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, domain.MsgNewsletterAccepted, nil)
}
