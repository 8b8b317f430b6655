package site

import (
	"net/http"

	"vuidokan-site/config"
	"vuidokan-site/internal/domain"
	"vuidokan-site/internal/usecase"
	"vuidokan-site/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services offered on the service page and in the contact form
var Services = []string{
	"Tổ chức giải đấu",
	"Đào tạo bóng đá trẻ em",
	"Khóa học bơi",
	"Cho thuê sân thể thao",
	"Sự kiện thể thao doanh nghiệp",
}

const homeNewsCount = 3

type pageRenderer struct {
	title   string
	company string
}

func newPageRenderer(cfg *config.Config) pageRenderer {
	return pageRenderer{title: cfg.SiteTitle, company: cfg.CompanyName}
}

// render fills in the data every template expects
func (p pageRenderer) render(c *gin.Context, status int, tmpl, page string, data gin.H) {
	h := gin.H{
		"title":   p.title,
		"company": p.company,
		"page":    page,
	}
	for k, v := range data {
		h[k] = v
	}
	c.HTML(status, tmpl, h)
}

func (p pageRenderer) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "error.tmpl", "", gin.H{
		"status":  http.StatusNotFound,
		"heading": "Không tìm thấy trang",
		"message": "Trang bạn tìm không tồn tại hoặc đã được di chuyển.",
	})
}

func (p pageRenderer) serverError(c *gin.Context, err error) {
	logger.Log.Error("Failed to render page", "path", c.Request.URL.Path, "error", err)
	p.render(c, http.StatusInternalServerError, "error.tmpl", "", gin.H{
		"status":  http.StatusInternalServerError,
		"heading": "Lỗi hệ thống",
		"message": "Đã có lỗi xảy ra. Vui lòng thử lại sau.",
	})
}

type PageHandler struct {
	pages  pageRenderer
	newsUC domain.NewsUsecase
}

// NewPageHandler registers the static marketing pages
func NewPageHandler(r gin.IRouter, pages pageRenderer, newsUC domain.NewsUsecase) {
	handler := &PageHandler{pages: pages, newsUC: newsUC}

	r.GET("/", handler.Home)
	r.GET("/aboutus", handler.About)
	r.GET("/about", handler.About)
	r.GET("/service", handler.Service)
}

func (h *PageHandler) Home(c *gin.Context) {
	page, err := h.newsUC.ListNews(c.Request.Context(), usecase.CategoryAll)
	if err != nil {
		h.pages.serverError(c, err)
		return
	}

	latest := make([]domain.ArticleView, 0, homeNewsCount)
	if page.Featured != nil {
		latest = append(latest, *page.Featured)
	}
	for _, a := range page.Articles {
		if len(latest) == homeNewsCount {
			break
		}
		latest = append(latest, a)
	}

	h.pages.render(c, http.StatusOK, "home.tmpl", "home", gin.H{"news": latest})
}

func (h *PageHandler) About(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "about.tmpl", "about", gin.H{"heading": "Giới thiệu"})
}

func (h *PageHandler) Service(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "service.tmpl", "services", gin.H{
		"heading":  "Dịch vụ",
		"services": Services,
	})
}
