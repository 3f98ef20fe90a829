package handlers

import (
	"net/http"

	"dealership/internal/services"
	"dealership/pkg/logger"

	"github.com/labstack/echo/v4"
)

type ContentHandler struct {
	content *services.ContentService
	log     logger.Logger
}

func NewContentHandler(content *services.ContentService, log logger.Logger) *ContentHandler {
	return &ContentHandler{content: content, log: log}
}

func (h *ContentHandler) Register(g *echo.Group) {
	g.GET("/content/home", h.HomeSections)
	g.GET("/content/about", h.AboutSections)
	g.GET("/content/contact", h.ContactInfo)
	g.GET("/content/settings", h.SiteSettings)
	g.POST("/contact", h.SubmitContactForm)
}

func (h *ContentHandler) HomeSections(c echo.Context) error {
	sections, err := h.content.PublicHomeSections(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

func (h *ContentHandler) AboutSections(c echo.Context) error {
	sections, err := h.content.PublicAboutSections(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

func (h *ContentHandler) ContactInfo(c echo.Context) error {
	info, err := h.content.ContactInfo(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	if info == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{})
	}
	return c.JSON(http.StatusOK, info)
}

func (h *ContentHandler) SiteSettings(c echo.Context) error {
	settings, err := h.content.SiteSettings(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	if settings == nil {
		return c.JSON(http.StatusOK, map[string]interface{}{})
	}
	return c.JSON(http.StatusOK, settings)
}

type ContactFormRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *ContentHandler) SubmitContactForm(c echo.Context) error {
	var req ContactFormRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sub, err := h.content.SubmitContactForm(c.Request().Context(),
		req.Name, req.Email, req.Phone, req.Subject, req.Message)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": sub.ID})
}
