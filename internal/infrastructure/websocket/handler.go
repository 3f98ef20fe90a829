package websocket

import (
	"net/http"
	"time"

	"dealership/internal/domain"
	"dealership/internal/monitoring"
	"dealership/pkg/logger"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // public site, cross-origin clients expected
	},
}

// Handler upgrades public clients into listen-only subscriptions on a single
// auction. Bids travel over the HTTP API; the socket only pushes state
// changes out, so the read loop exists to detect disconnects and answer pings.
type Handler struct {
	auctionRepo domain.AuctionRepository
	connManager domain.ConnectionManager
	log         logger.Logger
}

func NewHandler(auctionRepo domain.AuctionRepository, connManager domain.ConnectionManager, log logger.Logger) *Handler {
	return &Handler{
		auctionRepo: auctionRepo,
		connManager: connManager,
		log:         log,
	}
}

func (h *Handler) HandleConnection(w http.ResponseWriter, r *http.Request, auctionID string) {
	auction, err := h.auctionRepo.Get(r.Context(), auctionID)
	if err != nil {
		h.log.Error("Failed to find auction", "error", err, "auction_id", auctionID)
		http.Error(w, "auction not found", http.StatusNotFound)
		return
	}

	if !auction.Biddable(time.Now()) {
		http.Error(w, "auction is not open", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("Failed to upgrade connection", "error", err)
		return
	}

	wsConn := NewConnection(conn, auctionID, h.log)
	h.connManager.RegisterConnection(auctionID, wsConn)
	monitoring.WebsocketConnections.Inc()

	go h.readLoop(wsConn, auctionID)
}

func (h *Handler) readLoop(conn *Connection, auctionID string) {
	defer func() {
		h.connManager.UnregisterConnection(auctionID, conn)
		conn.Close()
		monitoring.WebsocketConnections.Dec()
	}()

	for {
		var msg map[string]interface{}
		if err := conn.conn.ReadJSON(&msg); err != nil {
			return
		}

		if msgType, ok := msg["type"].(string); ok && msgType == "ping" {
			conn.Send(map[string]string{"type": "pong"})
		}
	}
}
