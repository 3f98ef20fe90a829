package mysql

import (
	"context"
	"database/sql"
	"errors"

	"dealership/internal/domain"
)

type MySQLBidRepository struct {
	db *sql.DB
}

func NewMySQLBidRepository(db *sql.DB) *MySQLBidRepository {
	return &MySQLBidRepository{db: db}
}

func (r *MySQLBidRepository) Insert(ctx context.Context, bid *domain.Bid) error {
	query := `
        INSERT INTO bids (id, auction_id, bidder_name, bidder_email, bid_amount, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		bid.ID, bid.AuctionID, bid.BidderName, bid.BidderEmail,
		bid.BidAmount, bid.CreatedAt)
	return err
}

func (r *MySQLBidRepository) Delete(ctx context.Context, bidID string) error {
	query := `DELETE FROM bids WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, bidID)
	return err
}

// Highest orders by amount, then earliest insertion, then id. Exact amount
// ties cannot be produced by admission; the ordering just keeps the result
// deterministic if the data is ever inconsistent.
func (r *MySQLBidRepository) Highest(ctx context.Context, auctionID string) (*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder_name, bidder_email, bid_amount, created_at
        FROM bids
        WHERE auction_id = ?
        ORDER BY bid_amount DESC, created_at ASC, id ASC
        LIMIT 1
    `
	var bid domain.Bid
	err := r.db.QueryRowContext(ctx, query, auctionID).Scan(
		&bid.ID, &bid.AuctionID, &bid.BidderName, &bid.BidderEmail,
		&bid.BidAmount, &bid.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *MySQLBidRepository) Recent(ctx context.Context, auctionID string, limit int) ([]*domain.Bid, error) {
	query := `
        SELECT id, auction_id, bidder_name, bidder_email, bid_amount, created_at
        FROM bids
        WHERE auction_id = ?
        ORDER BY created_at DESC
        LIMIT ?
    `
	rows, err := r.db.QueryContext(ctx, query, auctionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []*domain.Bid
	for rows.Next() {
		var bid domain.Bid
		err := rows.Scan(&bid.ID, &bid.AuctionID, &bid.BidderName,
			&bid.BidderEmail, &bid.BidAmount, &bid.CreatedAt)
		if err != nil {
			return nil, err
		}
		bids = append(bids, &bid)
	}
	return bids, rows.Err()
}
