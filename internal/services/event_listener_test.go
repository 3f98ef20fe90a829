package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealership/internal/domain"
	"dealership/pkg/logger"
)

type fakeConnManager struct {
	mu         sync.Mutex
	broadcasts map[string][]map[string]interface{}
	closed     []string
}

func newFakeConnManager() *fakeConnManager {
	return &fakeConnManager{broadcasts: make(map[string][]map[string]interface{})}
}

func (m *fakeConnManager) RegisterConnection(auctionID string, conn domain.WebSocketConnection)   {}
func (m *fakeConnManager) UnregisterConnection(auctionID string, conn domain.WebSocketConnection) {}

func (m *fakeConnManager) BroadcastToAuction(auctionID string, message interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts[auctionID] = append(m.broadcasts[auctionID], message.(map[string]interface{}))
	return nil
}

func (m *fakeConnManager) CloseAuctionConnections(auctionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, auctionID)
	return nil
}

func TestHandleBidPlacedEvent(t *testing.T) {
	cm := newFakeConnManager()
	el := NewEventListener(cm, logger.NewNop())

	err := el.handleAuctionEvent(&domain.AuctionEvent{
		Type:       domain.EventBidPlaced,
		AuctionID:  "auc-1",
		CurrentBid: 10100,
		TotalBids:  4,
		BidderName: "John D.",
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, cm.broadcasts["auc-1"], 1)
	msg := cm.broadcasts["auc-1"][0]
	assert.Equal(t, "bid_update", msg["type"])
	assert.Equal(t, 10100.0, msg["current_bid"])
	assert.Equal(t, 4, msg["total_bids"])
	assert.Equal(t, "John D.", msg["bidder_name"])
	assert.Empty(t, cm.closed)
}

func TestHandleAuctionClosedEvent(t *testing.T) {
	cm := newFakeConnManager()
	el := NewEventListener(cm, logger.NewNop())

	err := el.handleAuctionEvent(&domain.AuctionEvent{
		Type:       domain.EventAuctionClosed,
		AuctionID:  "auc-1",
		Winner:     "Alice S.",
		CurrentBid: 15500,
		Timestamp:  time.Now(),
	})
	require.NoError(t, err)

	require.Len(t, cm.broadcasts["auc-1"], 1)
	msg := cm.broadcasts["auc-1"][0]
	assert.Equal(t, "auction_ended", msg["type"])
	assert.Equal(t, "Alice S.", msg["winner"])
	assert.Equal(t, 15500.0, msg["amount"])

	assert.Equal(t, []string{"auc-1"}, cm.closed, "subscribers are disconnected after the final message")
}

func TestHandleUnknownEvent(t *testing.T) {
	el := NewEventListener(newFakeConnManager(), logger.NewNop())

	err := el.handleAuctionEvent(&domain.AuctionEvent{Type: "mystery", AuctionID: "auc-1"})
	assert.Error(t, err)
}
