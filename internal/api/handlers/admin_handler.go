package handlers

import (
	"net/http"
	"strconv"

	"dealership/internal/domain"
	"dealership/internal/services"
	"dealership/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	admin   *services.AdminService
	closer  *services.Closer
	content *services.ContentService
	log     logger.Logger
}

func NewAdminHandler(admin *services.AdminService, closer *services.Closer,
	content *services.ContentService, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		closer:  closer,
		content: content,
		log:     log,
	}
}

func (h *AdminHandler) Register(g *echo.Group) {
	g.POST("/auctions", h.CreateAuction)
	g.GET("/auctions", h.ListAuctions)
	g.PUT("/auctions/:id", h.UpdateAuction)
	g.DELETE("/auctions/:id", h.DeactivateAuction)
	g.POST("/auctions/close-ended", h.CloseEndedAuctions)

	g.POST("/cars", h.CreateCar)
	g.PUT("/cars/:id", h.UpdateCar)
	g.DELETE("/cars/:id", h.DeactivateCar)

	g.GET("/sales", h.ListSales)

	g.GET("/content/home", h.AllHomeSections)
	g.PUT("/content/home", h.SaveHomeSection)
	g.DELETE("/content/home/:id", h.DeleteHomeSection)
	g.GET("/content/about", h.AllAboutSections)
	g.PUT("/content/about", h.SaveAboutSection)
	g.PUT("/content/contact", h.SaveContactInfo)
	g.PUT("/content/settings", h.SaveSiteSettings)

	g.GET("/submissions", h.ListSubmissions)
	g.POST("/submissions/:id/read", h.MarkSubmissionRead)
}

func (h *AdminHandler) CreateAuction(c echo.Context) error {
	var req services.CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	auction, err := h.admin.CreateAuction(c.Request().Context(), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, auction)
}

func (h *AdminHandler) ListAuctions(c echo.Context) error {
	status := domain.AuctionStatus(c.QueryParam("status"))
	if status == "" {
		status = domain.AuctionActive
	}
	if !status.Valid() {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid status"})
	}

	auctions, err := h.admin.ListAuctions(c.Request().Context(), status)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

func (h *AdminHandler) UpdateAuction(c echo.Context) error {
	var req services.CreateAuctionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	auction, err := h.admin.UpdateAuction(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, auction)
}

func (h *AdminHandler) DeactivateAuction(c echo.Context) error {
	if err := h.admin.DeactivateAuction(c.Request().Context(), c.Param("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CloseEndedAuctions is the on-demand sweep trigger. It shares the
// implementation with the scheduled sweep and is safe to invoke at any time.
func (h *AdminHandler) CloseEndedAuctions(c echo.Context) error {
	summary, err := h.closer.SweepEndedAuctions(c.Request().Context())
	if err != nil {
		h.log.Error("Manual sweep failed", "error", err)
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *AdminHandler) CreateCar(c echo.Context) error {
	var car domain.Car
	if err := c.Bind(&car); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	created, err := h.admin.CreateCar(c.Request().Context(), &car)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *AdminHandler) UpdateCar(c echo.Context) error {
	var car domain.Car
	if err := c.Bind(&car); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	car.ID = c.Param("id")

	if err := h.admin.UpdateCar(c.Request().Context(), &car); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

func (h *AdminHandler) DeactivateCar(c echo.Context) error {
	if err := h.admin.SetCarStatus(c.Request().Context(), c.Param("id"), domain.CarInactive); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ListSales(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	saleType := domain.SaleType(c.QueryParam("sale_type"))

	sales, err := h.admin.ListSales(c.Request().Context(), saleType, limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *AdminHandler) AllHomeSections(c echo.Context) error {
	sections, err := h.content.AllHomeSections(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

func (h *AdminHandler) SaveHomeSection(c echo.Context) error {
	var section domain.HomeSection
	if err := c.Bind(&section); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.content.SaveHomeSection(c.Request().Context(), &section); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, section)
}

func (h *AdminHandler) DeleteHomeSection(c echo.Context) error {
	if err := h.content.DeleteHomeSection(c.Request().Context(), c.Param("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) AllAboutSections(c echo.Context) error {
	sections, err := h.content.AllAboutSections(c.Request().Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, sections)
}

func (h *AdminHandler) SaveAboutSection(c echo.Context) error {
	var section domain.AboutSection
	if err := c.Bind(&section); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.content.SaveAboutSection(c.Request().Context(), &section); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, section)
}

func (h *AdminHandler) SaveContactInfo(c echo.Context) error {
	var info domain.ContactInfo
	if err := c.Bind(&info); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.content.SaveContactInfo(c.Request().Context(), &info); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, info)
}

func (h *AdminHandler) SaveSiteSettings(c echo.Context) error {
	var settings domain.SiteSettings
	if err := c.Bind(&settings); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := h.content.SaveSiteSettings(c.Request().Context(), &settings); err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 100
	}

	subs, err := h.content.ListContactSubmissions(c.Request().Context(), limit)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, subs)
}

func (h *AdminHandler) MarkSubmissionRead(c echo.Context) error {
	if err := h.content.MarkSubmissionRead(c.Request().Context(), c.Param("id")); err != nil {
		return writeDomainError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
