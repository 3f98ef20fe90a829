package services

import (
	"context"
	"time"

	"dealership/internal/domain"
	"dealership/internal/monitoring"
	"dealership/pkg/logger"
	"dealership/pkg/utils"
)

// ClosedAuction is one line of a sweep summary. Winner is empty when the
// auction closed without bids; Err is set when closing partially failed.
type ClosedAuction struct {
	Auction string  `json:"auction"`
	Winner  string  `json:"winner,omitempty"`
	Amount  float64 `json:"amount"`
	Err     string  `json:"error,omitempty"`
}

type SweepSummary struct {
	Processed int             `json:"processed"`
	Closed    []ClosedAuction `json:"closed"`
}

// Closer transitions expired auctions to closed and materializes the winning
// bid into a sales transaction. The scheduled sweep and the admin "close now"
// trigger both run through SweepEndedAuctions; the conditional status update
// makes concurrent invocations safe.
type Closer struct {
	auctionRepo domain.AuctionRepository
	bidRepo     domain.BidRepository
	salesRepo   domain.SalesRepository
	floorCache  domain.FloorCache
	eventPub    domain.EventPublisher
	now         func() time.Time
	log         logger.Logger
}

func NewCloser(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	salesRepo domain.SalesRepository,
	floorCache domain.FloorCache,
	eventPub domain.EventPublisher,
	log logger.Logger,
) *Closer {
	return &Closer{
		auctionRepo: auctionRepo,
		bidRepo:     bidRepo,
		salesRepo:   salesRepo,
		floorCache:  floorCache,
		eventPub:    eventPub,
		now:         time.Now,
		log:         log,
	}
}

// SweepEndedAuctions processes every active auction whose end time has
// passed. Each auction is handled independently: a failure is recorded in
// the summary and the sweep moves on.
func (c *Closer) SweepEndedAuctions(ctx context.Context) (*SweepSummary, error) {
	start := c.now()
	defer func() {
		monitoring.SweepDuration.Observe(time.Since(start).Seconds())
	}()

	expired, err := c.auctionRepo.ListExpired(ctx, start)
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "list expired auctions", Err: err}
	}

	c.log.Info("Sweeping ended auctions", "count", len(expired))

	summary := &SweepSummary{Closed: []ClosedAuction{}}
	for _, auction := range expired {
		summary.Processed++
		summary.Closed = append(summary.Closed, c.closeOne(ctx, auction))
	}

	return summary, nil
}

func (c *Closer) closeOne(ctx context.Context, auction *domain.Auction) ClosedAuction {
	result := ClosedAuction{Auction: auction.CarName}

	// The status transition is the serialization point: a concurrent sweep
	// that loses this update skips the auction entirely, so the sales
	// transaction below can never be inserted twice.
	closed, err := c.auctionRepo.Close(ctx, auction.ID)
	if err != nil {
		c.log.Error("Failed to close auction", "auction_id", auction.ID, "error", err)
		monitoring.AuctionsClosed.WithLabelValues(monitoring.ResultFailed).Inc()
		result.Err = "failed to close auction"
		return result
	}
	if !closed {
		c.log.Info("Auction already closed by concurrent sweep", "auction_id", auction.ID)
		result.Err = "already closed"
		return result
	}

	if err := c.floorCache.Evict(ctx, auction.ID); err != nil {
		c.log.Warn("Failed to evict floor cache", "auction_id", auction.ID, "error", err)
	}

	winner, err := c.bidRepo.Highest(ctx, auction.ID)
	if err != nil {
		// The auction stays closed; an operator re-runs winner recording
		// from the summary.
		c.log.Error("Failed to determine winner", "auction_id", auction.ID, "error", err)
		monitoring.AuctionsClosed.WithLabelValues(monitoring.ResultFailed).Inc()
		result.Err = "failed to determine winner"
		return result
	}

	if winner == nil {
		c.log.Info("Auction closed without bids", "auction_id", auction.ID, "car", auction.CarName)
		monitoring.AuctionsClosed.WithLabelValues(monitoring.ResultNoBids).Inc()
		c.publishClosed(ctx, auction.ID, "", 0)
		return result
	}

	if winner.BidAmount != auction.CurrentBid {
		// Admission keeps current_bid equal to the ledger maximum; divergence
		// means the data was touched outside the engine.
		c.log.Warn("Ledger maximum disagrees with auction floor",
			"auction_id", auction.ID, "ledger_max", winner.BidAmount, "current_bid", auction.CurrentBid)
	}

	sale := &domain.SalesTransaction{
		ID:              utils.GenerateID("sale"),
		AuctionID:       auction.ID,
		CustomerName:    winner.BidderName,
		CustomerEmail:   winner.BidderEmail,
		Amount:          winner.BidAmount,
		SaleType:        domain.SaleAuction,
		TransactionDate: c.now(),
		CreatedAt:       c.now(),
	}
	if err := c.salesRepo.Insert(ctx, sale); err != nil {
		c.log.Error("Failed to record sale", "auction_id", auction.ID,
			"winner", winner.BidderEmail, "error", err)
		monitoring.AuctionsClosed.WithLabelValues(monitoring.ResultFailed).Inc()
		result.Winner = winner.BidderEmail
		result.Amount = winner.BidAmount
		result.Err = "failed to record sale"
		return result
	}

	c.log.Info("Winner recorded", "auction_id", auction.ID,
		"winner", winner.BidderEmail, "amount", winner.BidAmount)
	monitoring.AuctionsClosed.WithLabelValues(monitoring.ResultWinner).Inc()

	result.Winner = winner.BidderEmail
	result.Amount = winner.BidAmount
	c.publishClosed(ctx, auction.ID, AnonymizeName(winner.BidderName), winner.BidAmount)
	return result
}

func (c *Closer) publishClosed(ctx context.Context, auctionID, winner string, amount float64) {
	event := &domain.AuctionEvent{
		Type:       domain.EventAuctionClosed,
		AuctionID:  auctionID,
		Winner:     winner,
		CurrentBid: amount,
		Timestamp:  c.now(),
	}
	if err := c.eventPub.PublishAuctionEvent(ctx, event); err != nil {
		c.log.Warn("Failed to publish close event", "auction_id", auctionID, "error", err)
	}
}
