package site

import (
	"fmt"
	"net/http"
	"time"

	"vuidokan-site/config"
	"vuidokan-site/internal/delivery/http/middleware"
	"vuidokan-site/internal/delivery/http/response"
	"vuidokan-site/internal/domain"
	"vuidokan-site/internal/usecase"
	"vuidokan-site/pkg/security"
	"vuidokan-site/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC      domain.ContactUsecase
	NewsletterUC   domain.NewsletterUsecase
	NewsUC         domain.NewsUsecase
	HealthUC       usecase.HealthUsecase
	Config         *config.Config
	// SecurityLogger defaults to security.DefaultLogger()
	SecurityLogger *security.SecurityLogger
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tmpl)

	// Global Middlewares
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(config.IsProduction()))
	r.Use(middleware.ErrorHandler())

	secLog := deps.SecurityLogger
	if secLog == nil {
		secLog = security.DefaultLogger()
	}

	pages := newPageRenderer(deps.Config)
	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	r.StaticFS("/static", http.FS(web.Static()))

	r.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "Service degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	NewPageHandler(r, pages, deps.NewsUC)
	NewNewsHandler(r, pages, deps.NewsUC, deps.NewsletterUC, secLog,
		middleware.RateLimitMiddleware(middleware.NewsletterRateLimitConfig(deps.Config.RateLimitNewsletterLimit, window)))
	NewContactHandler(r, pages, deps.ContactUC, secLog,
		middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Config.RateLimitContactLimit, window)))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		pages.notFound(c)
	})

	return r, nil
}
