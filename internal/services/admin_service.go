package services

import (
	"context"
	"time"

	"dealership/internal/domain"
	"dealership/pkg/logger"
	"dealership/pkg/utils"
)

// AdminService covers the inventory and auction lifecycle operations behind
// the admin panel. Bid admission and closing stay with their own services;
// this one never touches current_bid or total_bids on a live auction.
type AdminService struct {
	auctionRepo domain.AuctionRepository
	carRepo     domain.CarRepository
	salesRepo   domain.SalesRepository
	floorCache  domain.FloorCache
	eventPub    domain.EventPublisher
	now         func() time.Time
	log         logger.Logger
}

func NewAdminService(
	auctionRepo domain.AuctionRepository,
	carRepo domain.CarRepository,
	salesRepo domain.SalesRepository,
	floorCache domain.FloorCache,
	eventPub domain.EventPublisher,
	log logger.Logger,
) *AdminService {
	return &AdminService{
		auctionRepo: auctionRepo,
		carRepo:     carRepo,
		salesRepo:   salesRepo,
		floorCache:  floorCache,
		eventPub:    eventPub,
		now:         time.Now,
		log:         log,
	}
}

type CreateAuctionRequest struct {
	CarName     string    `json:"car_name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	StartingBid float64   `json:"starting_bid"`
	EndTime     time.Time `json:"end_time"`
}

func (s *AdminService) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*domain.Auction, error) {
	if req.CarName == "" {
		return nil, &domain.ValidationError{Field: "car_name", Reason: "is required"}
	}
	if req.StartingBid <= 0 {
		return nil, &domain.ValidationError{Field: "starting_bid", Reason: "must be positive"}
	}
	if !req.EndTime.After(s.now()) {
		return nil, &domain.ValidationError{Field: "end_time", Reason: "must be in the future"}
	}

	auction := &domain.Auction{
		ID:          utils.GenerateID("auction"),
		CarName:     req.CarName,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		CurrentBid:  req.StartingBid,
		EndTime:     req.EndTime,
		Status:      domain.AuctionActive,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}

	if err := s.auctionRepo.Create(ctx, auction); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "create auction", Err: err}
	}

	if err := s.floorCache.SetFloor(ctx, auction.ID, auction.CurrentBid, 0); err != nil {
		s.log.Warn("Failed to seed floor cache", "auction_id", auction.ID, "error", err)
	}

	s.log.Info("Auction created", "auction_id", auction.ID, "car", auction.CarName,
		"starting_bid", auction.CurrentBid, "end_time", auction.EndTime)
	return auction, nil
}

func (s *AdminService) ListAuctions(ctx context.Context, status domain.AuctionStatus) ([]*domain.Auction, error) {
	return s.auctionRepo.ListByStatus(ctx, status)
}

// UpdateAuction edits descriptive fields and the end time. The floor and bid
// count are owned by admission: a starting-bid edit only lands through the
// guarded SetStartingBid, so a bid admitted mid-edit can never be rolled back.
func (s *AdminService) UpdateAuction(ctx context.Context, auctionID string, req CreateAuctionRequest) (*domain.Auction, error) {
	auction, err := s.auctionRepo.Get(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	if req.CarName != "" {
		auction.CarName = req.CarName
	}
	if req.Description != "" {
		auction.Description = req.Description
	}
	if req.ImageURL != "" {
		auction.ImageURL = req.ImageURL
	}
	if !req.EndTime.IsZero() {
		auction.EndTime = req.EndTime
	}

	if err := s.auctionRepo.Update(ctx, auction); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "update auction", Err: err}
	}

	if req.StartingBid > 0 {
		applied, err := s.auctionRepo.SetStartingBid(ctx, auctionID, req.StartingBid)
		if err != nil {
			return nil, &domain.StorageUnavailableError{Op: "set starting bid", Err: err}
		}
		if !applied {
			s.log.Info("Starting bid unchanged, auction already has bids", "auction_id", auctionID)
		}
	}

	updated, err := s.auctionRepo.Get(ctx, auctionID)
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "reload auction", Err: err}
	}

	s.publishUpdated(ctx, auctionID)
	return updated, nil
}

// DeactivateAuction soft-deletes: the auction disappears from public
// listings regardless of its bid history.
func (s *AdminService) DeactivateAuction(ctx context.Context, auctionID string) error {
	if err := s.auctionRepo.SetStatus(ctx, auctionID, domain.AuctionInactive); err != nil {
		return &domain.StorageUnavailableError{Op: "deactivate auction", Err: err}
	}
	if err := s.floorCache.Evict(ctx, auctionID); err != nil {
		s.log.Warn("Failed to evict floor cache", "auction_id", auctionID, "error", err)
	}
	s.publishUpdated(ctx, auctionID)
	return nil
}

func (s *AdminService) publishUpdated(ctx context.Context, auctionID string) {
	event := &domain.AuctionEvent{
		Type:      domain.EventAuctionUpdated,
		AuctionID: auctionID,
		Timestamp: s.now(),
	}
	if err := s.eventPub.PublishAuctionEvent(ctx, event); err != nil {
		s.log.Warn("Failed to publish auction update", "auction_id", auctionID, "error", err)
	}
}

func (s *AdminService) CreateCar(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	if car.Name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if car.Price <= 0 {
		return nil, &domain.ValidationError{Field: "price", Reason: "must be positive"}
	}

	car.ID = utils.GenerateID("car")
	if car.Status == "" {
		car.Status = domain.CarActive
	}
	car.CreatedAt = s.now()
	car.UpdatedAt = s.now()

	if err := s.carRepo.Create(ctx, car); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "create car", Err: err}
	}
	return car, nil
}

func (s *AdminService) UpdateCar(ctx context.Context, car *domain.Car) error {
	if car.ID == "" {
		return &domain.ValidationError{Field: "id", Reason: "is required"}
	}
	if err := s.carRepo.Update(ctx, car); err != nil {
		return &domain.StorageUnavailableError{Op: "update car", Err: err}
	}
	return nil
}

func (s *AdminService) SetCarStatus(ctx context.Context, carID string, status domain.CarStatus) error {
	return s.carRepo.SetStatus(ctx, carID, status)
}

func (s *AdminService) ListSales(ctx context.Context, saleType domain.SaleType, limit int) ([]*domain.SalesTransaction, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.salesRepo.List(ctx, saleType, limit)
}
