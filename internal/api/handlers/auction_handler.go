package handlers

import (
	"net/http"

	"dealership/internal/infrastructure/websocket"
	"dealership/internal/services"
	"dealership/pkg/logger"

	"github.com/labstack/echo/v4"
)

type AuctionHandler struct {
	bidService *services.BidService
	wsHandler  *websocket.Handler
	recentBids int
	log        logger.Logger
}

func NewAuctionHandler(bidService *services.BidService, wsHandler *websocket.Handler,
	recentBids int, log logger.Logger) *AuctionHandler {
	return &AuctionHandler{
		bidService: bidService,
		wsHandler:  wsHandler,
		recentBids: recentBids,
		log:        log,
	}
}

func (h *AuctionHandler) Register(g *echo.Group) {
	g.GET("/auctions", h.ListAuctions)
	g.GET("/auctions/:id", h.GetAuction)
	g.GET("/auctions/:id/floor", h.GetFloor)
	g.GET("/auctions/:id/bids", h.RecentBids)
	g.POST("/bids", h.SubmitBid)
	g.GET("/ws/auctions/:id", h.Subscribe)
}

func (h *AuctionHandler) ListAuctions(c echo.Context) error {
	auctions, err := h.bidService.ListActiveAuctions(c.Request().Context())
	if err != nil {
		h.log.Error("Failed to list auctions", "error", err)
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, auctions)
}

func (h *AuctionHandler) GetAuction(c echo.Context) error {
	auction, err := h.bidService.GetAuction(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, auction)
}

// GetFloor is the cheap polling endpoint for countdown displays. The client
// computes remaining time itself; the server stays the authority on whether
// a bid is still accepted.
func (h *AuctionHandler) GetFloor(c echo.Context) error {
	currentBid, totalBids, err := h.bidService.CurrentFloor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"auction_id":  c.Param("id"),
		"current_bid": currentBid,
		"total_bids":  totalBids,
	})
}

func (h *AuctionHandler) RecentBids(c echo.Context) error {
	bids, err := h.bidService.RecentBids(c.Request().Context(), c.Param("id"), h.recentBids)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(http.StatusOK, bids)
}

type SubmitBidRequest struct {
	AuctionID   string  `json:"auction_id"`
	BidderName  string  `json:"bidder_name"`
	BidderEmail string  `json:"bidder_email"`
	BidAmount   float64 `json:"bid_amount"`
}

func (h *AuctionHandler) SubmitBid(c echo.Context) error {
	var req SubmitBidRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	bid, err := h.bidService.SubmitBid(c.Request().Context(),
		req.AuctionID, req.BidderName, req.BidderEmail, req.BidAmount)
	if err != nil {
		return writeDomainError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"bid_id":     bid.ID,
		"auction_id": bid.AuctionID,
		"bid_amount": bid.BidAmount,
	})
}

func (h *AuctionHandler) Subscribe(c echo.Context) error {
	h.wsHandler.HandleConnection(c.Response(), c.Request(), c.Param("id"))
	return nil
}
