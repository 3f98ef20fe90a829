package domain

import (
	"time"
)

type AuctionStatus string

const (
	AuctionActive   AuctionStatus = "active"
	AuctionClosed   AuctionStatus = "closed"
	AuctionInactive AuctionStatus = "inactive"
)

func (s AuctionStatus) Valid() bool {
	switch s {
	case AuctionActive, AuctionClosed, AuctionInactive:
		return true
	}
	return false
}

type Auction struct {
	ID          string `json:"id"`
	CarName     string `json:"car_name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	// CurrentBid is the floor a new bid must exceed. It equals the highest
	// admitted bid, or the seller-set starting amount when no bids exist.
	CurrentBid float64       `json:"current_bid"`
	TotalBids  int           `json:"total_bids"`
	EndTime    time.Time     `json:"end_time"`
	Status     AuctionStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Biddable reports whether the auction accepts bids at the given instant.
// The server clock is authoritative; clients showing a stale countdown
// still get rejected here.
func (a *Auction) Biddable(now time.Time) bool {
	return a.Status == AuctionActive && now.Before(a.EndTime)
}

// Bid rows are append-only; they are never updated after insertion.
type Bid struct {
	ID          string    `json:"id"`
	AuctionID   string    `json:"auction_id"`
	BidderName  string    `json:"bidder_name"`
	BidderEmail string    `json:"bidder_email"`
	BidAmount   float64   `json:"bid_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type SaleType string

const (
	SaleAuction  SaleType = "auction"
	SalePurchase SaleType = "purchase"
	SaleRental   SaleType = "rental"
)

type SalesTransaction struct {
	ID              string    `json:"id"`
	AuctionID       string    `json:"auction_id,omitempty"`
	CarID           string    `json:"car_id,omitempty"`
	CustomerName    string    `json:"customer_name"`
	CustomerEmail   string    `json:"customer_email"`
	CustomerPhone   string    `json:"customer_phone,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Amount          float64   `json:"amount"`
	SaleType        SaleType  `json:"sale_type"`
	TransactionDate time.Time `json:"transaction_date"`
	CreatedAt       time.Time `json:"created_at"`
}

type CarStatus string

const (
	CarActive   CarStatus = "active"
	CarSold     CarStatus = "sold"
	CarInactive CarStatus = "inactive"
)

type Car struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	Category      string    `json:"category"`
	Year          int       `json:"year"`
	Mileage       int       `json:"mileage"`
	Color         string    `json:"color"`
	Engine        string    `json:"engine"`
	Transmission  string    `json:"transmission"`
	Speed         string    `json:"speed"`
	Doors         int       `json:"doors"`
	Passengers    int       `json:"passengers"`
	ImageURL      string    `json:"image_url"`
	ImageHoverURL string    `json:"image_hover_url"`
	Status        CarStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
