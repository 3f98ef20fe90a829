package services

import (
	"context"
	"errors"
	"math"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"dealership/internal/domain"
	"dealership/internal/monitoring"
	"dealership/pkg/logger"
	"dealership/pkg/utils"
)

// BidService is the only path that mutates an auction's floor. Admission is
// insert-then-CAS: the bid row goes in first, then the auction row is updated
// under a conditional guard; a bid whose guard fails is removed again and the
// caller gets the post-race floor back.
type BidService struct {
	auctionRepo  domain.AuctionRepository
	bidRepo      domain.BidRepository
	floorCache   domain.FloorCache
	eventPub     domain.EventPublisher
	minIncrement float64
	now          func() time.Time
	log          logger.Logger
}

func NewBidService(
	auctionRepo domain.AuctionRepository,
	bidRepo domain.BidRepository,
	floorCache domain.FloorCache,
	eventPub domain.EventPublisher,
	minIncrement float64,
	log logger.Logger,
) *BidService {
	return &BidService{
		auctionRepo:  auctionRepo,
		bidRepo:      bidRepo,
		floorCache:   floorCache,
		eventPub:     eventPub,
		minIncrement: minIncrement,
		now:          time.Now,
		log:          log,
	}
}

func (s *BidService) SubmitBid(ctx context.Context, auctionID, bidderName, bidderEmail string, amount float64) (*domain.Bid, error) {
	bidderName = strings.TrimSpace(bidderName)
	bidderEmail = strings.TrimSpace(bidderEmail)

	if err := validateBidder(bidderName, bidderEmail, amount); err != nil {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeValidation).Inc()
		return nil, err
	}

	auction, err := s.auctionRepo.Get(ctx, auctionID)
	if errors.Is(err, domain.ErrNotFound) {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeNotBiddable).Inc()
		return nil, &domain.AuctionNotBiddableError{AuctionID: auctionID, Reason: "auction not found"}
	}
	if err != nil {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeStorageError).Inc()
		return nil, &domain.StorageUnavailableError{Op: "load auction", Err: err}
	}

	now := s.now()
	if !auction.Biddable(now) {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeNotBiddable).Inc()
		reason := "auction has ended"
		if auction.Status != domain.AuctionActive {
			reason = "auction is " + string(auction.Status)
		}
		return nil, &domain.AuctionNotBiddableError{AuctionID: auctionID, Reason: reason}
	}

	// The minimum increment is a hard invariant here, not just a UI nudge.
	if amount < auction.CurrentBid+s.minIncrement {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeTooLow).Inc()
		return nil, &domain.BidTooLowError{
			CurrentBid: auction.CurrentBid,
			MinimumBid: auction.CurrentBid + s.minIncrement,
		}
	}

	bid := &domain.Bid{
		ID:          utils.GenerateID("bid"),
		AuctionID:   auctionID,
		BidderName:  bidderName,
		BidderEmail: bidderEmail,
		BidAmount:   amount,
		CreatedAt:   now,
	}

	if err := s.bidRepo.Insert(ctx, bid); err != nil {
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeStorageError).Inc()
		return nil, &domain.StorageUnavailableError{Op: "insert bid", Err: err}
	}

	admitted, err := s.auctionRepo.RaiseBid(ctx, auctionID, amount)
	if err != nil {
		s.removeOrphan(ctx, bid)
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeStorageError).Inc()
		return nil, &domain.StorageUnavailableError{Op: "update auction floor", Err: err}
	}

	if !admitted {
		// Lost the race, or the sweep closed the auction between the read
		// and the update. The bid row must not survive either way.
		s.removeOrphan(ctx, bid)
		monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeTooLow).Inc()

		latest, lerr := s.auctionRepo.Get(ctx, auctionID)
		if lerr != nil {
			latest = auction
		}
		if !latest.Biddable(s.now()) {
			return nil, &domain.AuctionNotBiddableError{AuctionID: auctionID, Reason: "auction has ended"}
		}
		return nil, &domain.BidTooLowError{
			CurrentBid: latest.CurrentBid,
			MinimumBid: latest.CurrentBid + s.minIncrement,
		}
	}

	monitoring.BidsSubmitted.WithLabelValues(monitoring.OutcomeAccepted).Inc()
	s.log.Info("Bid admitted", "auction_id", auctionID, "amount", amount, "total_bids", auction.TotalBids+1)

	// Cache and fan-out are best effort; the admission is already durable.
	if err := s.floorCache.SetFloor(ctx, auctionID, amount, auction.TotalBids+1); err != nil {
		s.log.Warn("Failed to update floor cache", "auction_id", auctionID, "error", err)
	}

	event := &domain.AuctionEvent{
		Type:       domain.EventBidPlaced,
		AuctionID:  auctionID,
		CurrentBid: amount,
		TotalBids:  auction.TotalBids + 1,
		BidderName: AnonymizeName(bidderName),
		Timestamp:  now,
	}
	if err := s.eventPub.PublishAuctionEvent(ctx, event); err != nil {
		s.log.Warn("Failed to publish bid event", "auction_id", auctionID, "error", err)
	}

	return bid, nil
}

func (s *BidService) removeOrphan(ctx context.Context, bid *domain.Bid) {
	if err := s.bidRepo.Delete(ctx, bid.ID); err != nil {
		// Orphans are harmless for the floor invariant (the auction row never
		// reflected them) but pollute the ledger; flag them for cleanup.
		s.log.Error("Failed to delete orphaned bid", "bid_id", bid.ID,
			"auction_id", bid.AuctionID, "error", err)
	}
}

// ListActiveAuctions returns the public auction listing, soonest-ending first.
func (s *BidService) ListActiveAuctions(ctx context.Context) ([]*domain.Auction, error) {
	auctions, err := s.auctionRepo.ListByStatus(ctx, domain.AuctionActive)
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "list auctions", Err: err}
	}
	return auctions, nil
}

func (s *BidService) GetAuction(ctx context.Context, auctionID string) (*domain.Auction, error) {
	auction, err := s.auctionRepo.Get(ctx, auctionID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "load auction", Err: err}
	}
	return auction, nil
}

// CurrentFloor serves the polling fallback for countdown displays: cache
// first, database on miss.
func (s *BidService) CurrentFloor(ctx context.Context, auctionID string) (float64, int, error) {
	currentBid, totalBids, ok, err := s.floorCache.GetFloor(ctx, auctionID)
	if err != nil {
		s.log.Warn("Floor cache read failed", "auction_id", auctionID, "error", err)
	}
	if ok {
		return currentBid, totalBids, nil
	}

	auction, err := s.auctionRepo.Get(ctx, auctionID)
	if err != nil {
		return 0, 0, err
	}
	if err := s.floorCache.SetFloor(ctx, auctionID, auction.CurrentBid, auction.TotalBids); err != nil {
		s.log.Warn("Failed to warm floor cache", "auction_id", auctionID, "error", err)
	}
	return auction.CurrentBid, auction.TotalBids, nil
}

// RecentBids returns the latest bids with bidder names anonymized for
// public display. Emails never leave the service.
func (s *BidService) RecentBids(ctx context.Context, auctionID string, limit int) ([]*domain.Bid, error) {
	bids, err := s.bidRepo.Recent(ctx, auctionID, limit)
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "list recent bids", Err: err}
	}
	for _, bid := range bids {
		bid.BidderName = AnonymizeName(bid.BidderName)
		bid.BidderEmail = ""
	}
	return bids, nil
}

func validateBidder(name, email string, amount float64) error {
	// Length limits count characters, not bytes; accented names are not
	// penalized for their encoding.
	if utf8.RuneCountInString(name) < 3 {
		return &domain.ValidationError{Field: "bidder_name", Reason: "must be at least 3 characters"}
	}
	if utf8.RuneCountInString(name) > 100 {
		return &domain.ValidationError{Field: "bidder_name", Reason: "must be less than 100 characters"}
	}
	if len(email) > 255 {
		return &domain.ValidationError{Field: "bidder_email", Reason: "is too long"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &domain.ValidationError{Field: "bidder_email", Reason: "is not a valid email address"}
	}
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return &domain.ValidationError{Field: "bid_amount", Reason: "must be a positive amount"}
	}
	return nil
}

// AnonymizeName mirrors the public site display: "John Doe" -> "John D.",
// a single name -> "J***".
func AnonymizeName(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return ""
	}
	if len(parts) == 1 {
		return string([]rune(parts[0])[0]) + "***"
	}
	return parts[0] + " " + string([]rune(parts[1])[0]) + "."
}
