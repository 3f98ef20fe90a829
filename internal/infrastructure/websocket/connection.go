package websocket

import (
	"encoding/json"
	"sync"

	"dealership/pkg/logger"

	"github.com/gorilla/websocket"
)

// Connection wraps a gorilla websocket connection subscribed to one auction.
// Gorilla connections allow a single concurrent writer, so Send serializes.
type Connection struct {
	conn      *websocket.Conn
	auctionID string
	writeMu   sync.Mutex
	closed    bool
	log       logger.Logger
}

func NewConnection(conn *websocket.Conn, auctionID string, log logger.Logger) *Connection {
	return &Connection{
		conn:      conn,
		auctionID: auctionID,
		log:       log,
	}
}

func (c *Connection) Send(message interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return websocket.ErrCloseSent
	}

	payload, ok := message.([]byte)
	if !ok {
		var err error
		payload, err = json.Marshal(message)
		if err != nil {
			return err
		}
	}

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Connection) Close() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Connection) AuctionID() string {
	return c.auctionID
}
