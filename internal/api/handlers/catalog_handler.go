package handlers

import (
	"net/http"

	"dealership/internal/services"
	"dealership/pkg/logger"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	catalog *services.CatalogService
	log     logger.Logger
}

func NewCatalogHandler(catalog *services.CatalogService, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func (h *CatalogHandler) Register(g *echo.Group) {
	g.GET("/cars", h.ListCars)
	g.GET("/cars/:id", h.GetCar)
	g.POST("/purchase", h.ProcessPurchase)
}

func (h *CatalogHandler) ListCars(c echo.Context) error {
	cars, err := h.catalog.ListActiveCars(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list cars", "error", err)
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, cars)
}

func (h *CatalogHandler) GetCar(c echo.Context) error {
	car, err := h.catalog.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, car)
}

func (h *CatalogHandler) ProcessPurchase(c echo.Context) error {
	var req services.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.catalog.ProcessPurchase(c.Request().Context(), req)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
