package domain

import (
	"context"
	"time"
)

// Repository interfaces
type AuctionRepository interface {
	Create(ctx context.Context, auction *Auction) error
	Get(ctx context.Context, auctionID string) (*Auction, error)
	// ListByStatus returns auctions with the given status ordered by
	// end_time ascending.
	ListByStatus(ctx context.Context, status AuctionStatus) ([]*Auction, error)
	// ListExpired returns active auctions whose end_time has passed.
	ListExpired(ctx context.Context, now time.Time) ([]*Auction, error)
	// Update writes descriptive fields (name, description, image, end time)
	// only; the floor, bid count and status are never written from a read
	// copy.
	Update(ctx context.Context, auction *Auction) error
	SetStatus(ctx context.Context, auctionID string, status AuctionStatus) error
	// SetStartingBid conditionally moves current_bid, guarded by
	// total_bids = 0. Returns false without error once any bid is admitted.
	SetStartingBid(ctx context.Context, auctionID string, amount float64) (bool, error)
	// RaiseBid conditionally sets current_bid to amount and increments
	// total_bids, guarded by status = active and amount > current_bid.
	// Returns false without error when the guard fails (lost race).
	RaiseBid(ctx context.Context, auctionID string, amount float64) (bool, error)
	// Close transitions active -> closed. Returns false when the auction was
	// not active; this is the serialization point for concurrent sweeps.
	Close(ctx context.Context, auctionID string) (bool, error)
}

type BidRepository interface {
	Insert(ctx context.Context, bid *Bid) error
	// Delete removes an orphaned bid whose auction update lost the admission
	// race. The ledger is otherwise append-only.
	Delete(ctx context.Context, bidID string) error
	// Highest returns the winning candidate: max bid_amount, earliest
	// created_at on a tie. Returns nil when the auction has no bids.
	Highest(ctx context.Context, auctionID string) (*Bid, error)
	// Recent returns the latest bids by created_at descending, capped at limit.
	Recent(ctx context.Context, auctionID string, limit int) ([]*Bid, error)
}

type SalesRepository interface {
	Insert(ctx context.Context, tx *SalesTransaction) error
	List(ctx context.Context, saleType SaleType, limit int) ([]*SalesTransaction, error)
}

type CarRepository interface {
	Create(ctx context.Context, car *Car) error
	Get(ctx context.Context, carID string) (*Car, error)
	ListByStatus(ctx context.Context, status CarStatus) ([]*Car, error)
	Update(ctx context.Context, car *Car) error
	SetStatus(ctx context.Context, carID string, status CarStatus) error
}

type ContentRepository interface {
	ListHomeSections(ctx context.Context, onlyActive bool) ([]*HomeSection, error)
	UpsertHomeSection(ctx context.Context, section *HomeSection) error
	DeleteHomeSection(ctx context.Context, sectionID string) error

	ListAboutSections(ctx context.Context, onlyActive bool) ([]*AboutSection, error)
	UpsertAboutSection(ctx context.Context, section *AboutSection) error

	GetContactInfo(ctx context.Context) (*ContactInfo, error)
	UpdateContactInfo(ctx context.Context, info *ContactInfo) error

	InsertContactSubmission(ctx context.Context, sub *ContactSubmission) error
	ListContactSubmissions(ctx context.Context, limit int) ([]*ContactSubmission, error)
	MarkSubmissionRead(ctx context.Context, submissionID string) error

	GetSiteSettings(ctx context.Context) (*SiteSettings, error)
	UpdateSiteSettings(ctx context.Context, settings *SiteSettings) error
}

// Event bus interfaces
type EventHandler func(event *AuctionEvent) error

type EventPublisher interface {
	PublishAuctionEvent(ctx context.Context, event *AuctionEvent) error
}

type EventSubscriber interface {
	SubscribeToAuctionEvents(ctx context.Context, handler EventHandler) error
}

// FloorCache keeps the current floor and bid count per auction for cheap
// public reads. MySQL stays authoritative; the cache is best-effort.
type FloorCache interface {
	SetFloor(ctx context.Context, auctionID string, currentBid float64, totalBids int) error
	GetFloor(ctx context.Context, auctionID string) (currentBid float64, totalBids int, ok bool, err error)
	Evict(ctx context.Context, auctionID string) error
}

// Leader election interface
type LeaderElection interface {
	BecomeLeader(ctx context.Context, instanceID string) (bool, error)
	IsLeader(ctx context.Context, instanceID string) (bool, error)
	ReleaseLeadership(ctx context.Context, instanceID string) error
}

// WebSocket interfaces
type WebSocketConnection interface {
	Send(message interface{}) error
	Close() error
	AuctionID() string
}

type ConnectionManager interface {
	RegisterConnection(auctionID string, conn WebSocketConnection)
	UnregisterConnection(auctionID string, conn WebSocketConnection)
	BroadcastToAuction(auctionID string, message interface{}) error
	CloseAuctionConnections(auctionID string) error
}

type AuctionBroadcaster interface {
	BroadcastToAuction(ctx context.Context, auctionID string, message interface{}) error
}
