package websocket

import (
	"encoding/json"
	"sync"

	"dealership/internal/domain"
	"dealership/pkg/logger"
)

// ConnectionManager tracks which live connections watch which auction.
// Subscribers are anonymous; there is no per-user state to keep.
type ConnectionManager struct {
	connections map[string]map[domain.WebSocketConnection]struct{} // auctionID -> connections
	mutex       sync.RWMutex
	log         logger.Logger
}

func NewConnectionManager(log logger.Logger) *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]map[domain.WebSocketConnection]struct{}),
		log:         log,
	}
}

func (cm *ConnectionManager) RegisterConnection(auctionID string, conn domain.WebSocketConnection) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if cm.connections[auctionID] == nil {
		cm.connections[auctionID] = make(map[domain.WebSocketConnection]struct{})
	}
	cm.connections[auctionID][conn] = struct{}{}

	cm.log.Debug("Connection registered", "auction_id", auctionID,
		"subscribers", len(cm.connections[auctionID]))
}

func (cm *ConnectionManager) UnregisterConnection(auctionID string, conn domain.WebSocketConnection) {
	cm.mutex.Lock()
	defer cm.mutex.Unlock()

	if auctionConns, exists := cm.connections[auctionID]; exists {
		delete(auctionConns, conn)
		if len(auctionConns) == 0 {
			delete(cm.connections, auctionID)
		}
	}
}

func (cm *ConnectionManager) connectionsFor(auctionID string) []domain.WebSocketConnection {
	cm.mutex.RLock()
	defer cm.mutex.RUnlock()

	conns := make([]domain.WebSocketConnection, 0, len(cm.connections[auctionID]))
	for conn := range cm.connections[auctionID] {
		conns = append(conns, conn)
	}
	return conns
}

// BroadcastToAuction delivers the message to every subscriber of the auction.
// A failed send is logged and skipped; one slow client must not block the rest.
func (cm *ConnectionManager) BroadcastToAuction(auctionID string, message interface{}) error {
	messageBytes, err := json.Marshal(message)
	if err != nil {
		return err
	}

	for _, conn := range cm.connectionsFor(auctionID) {
		if err := conn.Send(messageBytes); err != nil {
			cm.log.Error("Failed to send message", "auction_id", auctionID, "error", err)
		}
	}

	return nil
}

// CloseAuctionConnections tears down every subscriber of a finished auction.
func (cm *ConnectionManager) CloseAuctionConnections(auctionID string) error {
	cm.mutex.Lock()
	conns := cm.connections[auctionID]
	delete(cm.connections, auctionID)
	cm.mutex.Unlock()

	for conn := range conns {
		if err := conn.Close(); err != nil {
			cm.log.Error("Failed to close connection", "auction_id", auctionID, "error", err)
		}
	}

	cm.log.Info("Connections closed for auction", "auction_id", auctionID, "count", len(conns))
	return nil
}
