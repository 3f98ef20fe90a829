package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dealership/internal/domain"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLAuctionRepository struct {
	db *sql.DB
}

func NewMySQLAuctionRepository(db *sql.DB) *MySQLAuctionRepository {
	return &MySQLAuctionRepository{db: db}
}

func (r *MySQLAuctionRepository) Create(ctx context.Context, auction *domain.Auction) error {
	query := `
        INSERT INTO auctions (id, car_name, description, image_url, current_bid, total_bids, end_time, status, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.ID, auction.CarName, auction.Description, auction.ImageURL,
		auction.CurrentBid, auction.TotalBids, auction.EndTime,
		string(auction.Status), auction.CreatedAt, auction.UpdatedAt)
	return err
}

func (r *MySQLAuctionRepository) Get(ctx context.Context, auctionID string) (*domain.Auction, error) {
	query := `
        SELECT id, car_name, description, image_url, current_bid, total_bids, end_time, status, created_at, updated_at
        FROM auctions WHERE id = ?
    `
	auction, err := scanAuction(r.db.QueryRowContext(ctx, query, auctionID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return auction, err
}

func (r *MySQLAuctionRepository) ListByStatus(ctx context.Context, status domain.AuctionStatus) ([]*domain.Auction, error) {
	query := `
        SELECT id, car_name, description, image_url, current_bid, total_bids, end_time, status, created_at, updated_at
        FROM auctions WHERE status = ?
        ORDER BY end_time ASC
    `
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuctions(rows)
}

func (r *MySQLAuctionRepository) ListExpired(ctx context.Context, now time.Time) ([]*domain.Auction, error) {
	query := `
        SELECT id, car_name, description, image_url, current_bid, total_bids, end_time, status, created_at, updated_at
        FROM auctions WHERE status = ? AND end_time < ?
        ORDER BY end_time ASC
    `
	rows, err := r.db.QueryContext(ctx, query, string(domain.AuctionActive), now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAuctions(rows)
}

// Update writes descriptive fields only. current_bid, total_bids and status
// have their own guarded writers (RaiseBid, SetStartingBid, Close, SetStatus);
// writing them back from a stale read here would undo a concurrent admission.
func (r *MySQLAuctionRepository) Update(ctx context.Context, auction *domain.Auction) error {
	query := `
        UPDATE auctions
        SET car_name = ?, description = ?, image_url = ?, end_time = ?, updated_at = ?
        WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		auction.CarName, auction.Description, auction.ImageURL,
		auction.EndTime, time.Now(), auction.ID)
	return err
}

// SetStartingBid moves the floor of an auction nobody has bid on yet. The
// total_bids guard makes it a no-op the instant the first bid is admitted,
// whichever side wins the race.
func (r *MySQLAuctionRepository) SetStartingBid(ctx context.Context, auctionID string, amount float64) (bool, error) {
	query := `UPDATE auctions SET current_bid = ?, updated_at = ? WHERE id = ? AND total_bids = 0`
	res, err := r.db.ExecContext(ctx, query, amount, time.Now(), auctionID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *MySQLAuctionRepository) SetStatus(ctx context.Context, auctionID string, status domain.AuctionStatus) error {
	query := `UPDATE auctions SET status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, string(status), time.Now(), auctionID)
	return err
}

// RaiseBid is the compare-and-swap at the heart of bid admission: the row
// only changes when the auction is still active and the new amount strictly
// exceeds the floor the database holds now, not the floor the caller read.
func (r *MySQLAuctionRepository) RaiseBid(ctx context.Context, auctionID string, amount float64) (bool, error) {
	query := `
        UPDATE auctions
        SET current_bid = ?, total_bids = total_bids + 1, updated_at = ?
        WHERE id = ? AND status = ? AND ? > current_bid
    `
	res, err := r.db.ExecContext(ctx, query, amount, time.Now(), auctionID, string(domain.AuctionActive), amount)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// Close is guarded by status = active so concurrent sweeps serialize here:
// exactly one caller observes the transition.
func (r *MySQLAuctionRepository) Close(ctx context.Context, auctionID string) (bool, error) {
	query := `UPDATE auctions SET status = ?, updated_at = ? WHERE id = ? AND status = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(domain.AuctionClosed), time.Now(), auctionID, string(domain.AuctionActive))
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAuction(row rowScanner) (*domain.Auction, error) {
	var auction domain.Auction
	var status string
	var description, imageURL sql.NullString

	err := row.Scan(&auction.ID, &auction.CarName, &description, &imageURL,
		&auction.CurrentBid, &auction.TotalBids, &auction.EndTime,
		&status, &auction.CreatedAt, &auction.UpdatedAt)
	if err != nil {
		return nil, err
	}

	auction.Description = description.String
	auction.ImageURL = imageURL.String
	auction.Status = domain.AuctionStatus(status)
	return &auction, nil
}

func collectAuctions(rows *sql.Rows) ([]*domain.Auction, error) {
	var auctions []*domain.Auction
	for rows.Next() {
		auction, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, auction)
	}
	return auctions, rows.Err()
}
