package site

import (
	"errors"
	"net/http"

	"vuidokan-site/internal/delivery/http/response"
	"vuidokan-site/internal/domain"
	"vuidokan-site/pkg/apperror"
	"vuidokan-site/pkg/security"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	pages     pageRenderer
	contactUC domain.ContactUsecase
	secLog    *security.SecurityLogger
}

// NewContactHandler registers the contact page and its submission endpoint
func NewContactHandler(r gin.IRouter, pages pageRenderer, contactUC domain.ContactUsecase, secLog *security.SecurityLogger, limiter gin.HandlerFunc) {
	handler := &ContactHandler{
		pages:     pages,
		contactUC: contactUC,
		secLog:    secLog,
	}

	r.GET("/contact", handler.ContactPage)
	r.POST("/contact/submit", limiter, handler.SubmitContact)
}

func (h *ContactHandler) ContactPage(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "contact.tmpl", "contact", gin.H{
		"heading":  "Liên hệ",
		"services": Services,
	})
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Accepts a contact request as JSON or url-encoded form. Fields are re-validated on the server in the order required, email, phone.
// @Tags         contact
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        contact  body      domain.ContactRequest  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact/submit [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var req domain.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		logMalformed(c, h.secLog, err)
		c.Error(apperror.BadRequest(domain.MsgMalformedBody))
		return
	}

	meta := domain.SubmissionMeta{
		ClientIP:  c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}

	if _, err := h.contactUC.Submit(c.Request.Context(), &req, meta); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			c.Error(apperror.Invalid(domain.MsgContactMissingFields, err))
		case errors.Is(err, domain.ErrInvalidEmailShape):
			c.Error(apperror.Invalid(domain.MsgContactInvalidEmail, err))
		case errors.Is(err, domain.ErrInvalidPhoneShape):
			c.Error(apperror.Invalid(domain.MsgContactInvalidPhone, err))
		default:
			c.Error(err)
		}
		return
	}

	response.Success(c, http.StatusOK, domain.MsgContactAccepted, nil)
}

// logMalformed records a body that failed to bind before any validation ran
func logMalformed(c *gin.Context, secLog *security.SecurityLogger, err error) {
	secLog.LogMalformedRequest(
		c.Request.Context(),
		c.ClientIP(),
		c.GetHeader("User-Agent"),
		response.RequestID(c),
		c.FullPath(),
		err.Error(),
	)
}
