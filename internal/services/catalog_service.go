package services

import (
	"context"
	"errors"
	"math"
	"net/mail"
	"strings"
	"time"

	"dealership/internal/domain"
	"dealership/pkg/logger"
	"dealership/pkg/utils"
)

// rentalRate prices a rental as a fraction of the car's list price per day.
const rentalRate = 0.01

// CatalogService owns the car inventory and direct (non-auction) sales.
type CatalogService struct {
	carRepo   domain.CarRepository
	salesRepo domain.SalesRepository
	now       func() time.Time
	log       logger.Logger
}

func NewCatalogService(carRepo domain.CarRepository, salesRepo domain.SalesRepository, log logger.Logger) *CatalogService {
	return &CatalogService{
		carRepo:   carRepo,
		salesRepo: salesRepo,
		now:       time.Now,
		log:       log,
	}
}

func (s *CatalogService) ListActiveCars(ctx context.Context) ([]*domain.Car, error) {
	return s.carRepo.ListByStatus(ctx, domain.CarActive)
}

func (s *CatalogService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	return s.carRepo.Get(ctx, carID)
}

type PurchaseRequest struct {
	CarID         string          `json:"car_id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	CustomerPhone string          `json:"customer_phone"`
	Notes         string          `json:"notes"`
	SaleType      domain.SaleType `json:"sale_type"`
}

type PurchaseResult struct {
	TransactionID string          `json:"transaction_id"`
	CarName       string          `json:"car_name"`
	Amount        float64         `json:"amount"`
	SaleType      domain.SaleType `json:"sale_type"`
}

// ProcessPurchase records a purchase or rental for an active car. A purchase
// charges the list price; a rental charges the daily rate derived from it.
func (s *CatalogService) ProcessPurchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerEmail = strings.TrimSpace(req.CustomerEmail)

	if req.CarID == "" {
		return nil, &domain.ValidationError{Field: "car_id", Reason: "is required"}
	}
	if req.CustomerName == "" {
		return nil, &domain.ValidationError{Field: "customer_name", Reason: "is required"}
	}
	if _, err := mail.ParseAddress(req.CustomerEmail); err != nil {
		return nil, &domain.ValidationError{Field: "customer_email", Reason: "is not a valid email address"}
	}
	if req.SaleType != domain.SalePurchase && req.SaleType != domain.SaleRental {
		return nil, &domain.ValidationError{Field: "sale_type", Reason: `must be "purchase" or "rental"`}
	}

	car, err := s.carRepo.Get(ctx, req.CarID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, &domain.StorageUnavailableError{Op: "load car", Err: err}
	}

	if car.Status != domain.CarActive {
		return nil, &domain.ValidationError{Field: "car_id", Reason: "this car is no longer available"}
	}

	amount := car.Price
	if req.SaleType == domain.SaleRental {
		amount = math.Round(car.Price * rentalRate)
	}

	sale := &domain.SalesTransaction{
		ID:              utils.GenerateID("sale"),
		CarID:           car.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		Notes:           strings.TrimSpace(req.Notes),
		Amount:          amount,
		SaleType:        req.SaleType,
		TransactionDate: s.now(),
		CreatedAt:       s.now(),
	}

	if err := s.salesRepo.Insert(ctx, sale); err != nil {
		return nil, &domain.StorageUnavailableError{Op: "insert sales transaction", Err: err}
	}

	s.log.Info("Sale recorded", "transaction_id", sale.ID, "car", car.Name,
		"sale_type", req.SaleType, "amount", amount)

	return &PurchaseResult{
		TransactionID: sale.ID,
		CarName:       car.Name,
		Amount:        amount,
		SaleType:      req.SaleType,
	}, nil
}
