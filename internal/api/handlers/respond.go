package handlers

import (
	"errors"
	"net/http"

	"dealership/internal/domain"

	"github.com/labstack/echo/v4"
)

// writeDomainError maps the engine's error taxonomy onto HTTP statuses.
// BidTooLow responses carry the current floor so the bidder can retry.
func writeDomainError(c echo.Context, err error) error {
	var validationErr *domain.ValidationError
	var notBiddableErr *domain.AuctionNotBiddableError
	var tooLowErr *domain.BidTooLowError
	var storageErr *domain.StorageUnavailableError

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		})
	case errors.As(err, &notBiddableErr):
		return c.JSON(http.StatusConflict, map[string]string{
			"error": "auction ended",
		})
	case errors.As(err, &tooLowErr):
		return c.JSON(http.StatusConflict, map[string]interface{}{
			"error":       tooLowErr.Error(),
			"current_bid": tooLowErr.CurrentBid,
			"minimum_bid": tooLowErr.MinimumBid,
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.As(err, &storageErr):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "service temporarily unavailable",
		})
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "internal error",
		})
	}
}
