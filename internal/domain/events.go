package domain

import (
	"time"
)

type AuctionEventType string

const (
	EventBidPlaced      AuctionEventType = "bid_placed"
	EventAuctionClosed  AuctionEventType = "auction_closed"
	EventAuctionUpdated AuctionEventType = "auction_updated"
)

// AuctionEvent is the wire payload on the cross-instance event bus and the
// message broadcast to websocket subscribers. Events are keyed by auction id
// and published in commit order per auction; delivery is at-least-once with
// no buffering across disconnects, so reconnecting clients re-fetch state.
type AuctionEvent struct {
	Type       AuctionEventType `json:"type"`
	AuctionID  string           `json:"auction_id"`
	CurrentBid float64          `json:"current_bid,omitempty"`
	TotalBids  int              `json:"total_bids,omitempty"`
	BidderName string           `json:"bidder_name,omitempty"`
	Winner     string           `json:"winner,omitempty"`
	Timestamp  time.Time        `json:"timestamp"`
}
