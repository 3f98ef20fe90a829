package services

import (
	"context"
	"fmt"

	"dealership/internal/domain"
	"dealership/pkg/logger"
)

// EventListener bridges the cross-instance event bus to this instance's
// websocket subscribers. Every instance runs one, so a bid admitted anywhere
// reaches clients connected everywhere.
type EventListener struct {
	connManager domain.ConnectionManager
	log         logger.Logger
}

func NewEventListener(connManager domain.ConnectionManager, log logger.Logger) *EventListener {
	return &EventListener{
		connManager: connManager,
		log:         log,
	}
}

func (el *EventListener) Start(ctx context.Context, subscriber domain.EventSubscriber) error {
	el.log.Info("Starting event listener")
	return subscriber.SubscribeToAuctionEvents(ctx, el.handleAuctionEvent)
}

func (el *EventListener) handleAuctionEvent(event *domain.AuctionEvent) error {
	switch event.Type {
	case domain.EventBidPlaced:
		return el.connManager.BroadcastToAuction(event.AuctionID, map[string]interface{}{
			"type":        "bid_update",
			"current_bid": event.CurrentBid,
			"total_bids":  event.TotalBids,
			"bidder_name": event.BidderName,
			"timestamp":   event.Timestamp,
		})

	case domain.EventAuctionClosed:
		if err := el.connManager.BroadcastToAuction(event.AuctionID, map[string]interface{}{
			"type":      "auction_ended",
			"winner":    event.Winner,
			"amount":    event.CurrentBid,
			"timestamp": event.Timestamp,
		}); err != nil {
			el.log.Error("Failed to broadcast close", "auction_id", event.AuctionID, "error", err)
		}
		return el.connManager.CloseAuctionConnections(event.AuctionID)

	case domain.EventAuctionUpdated:
		return el.connManager.BroadcastToAuction(event.AuctionID, map[string]interface{}{
			"type":      "auction_updated",
			"timestamp": event.Timestamp,
		})
	}

	return fmt.Errorf("unknown event type %q", event.Type)
}
