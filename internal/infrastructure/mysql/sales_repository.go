package mysql

import (
	"context"
	"database/sql"

	"dealership/internal/domain"
)

type MySQLSalesRepository struct {
	db *sql.DB
}

func NewMySQLSalesRepository(db *sql.DB) *MySQLSalesRepository {
	return &MySQLSalesRepository{db: db}
}

func (r *MySQLSalesRepository) Insert(ctx context.Context, tx *domain.SalesTransaction) error {
	query := `
        INSERT INTO sales_transactions
            (id, auction_id, car_id, customer_name, customer_email, customer_phone, notes, amount, sale_type, transaction_date, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		tx.ID, nullable(tx.AuctionID), nullable(tx.CarID),
		tx.CustomerName, tx.CustomerEmail, nullable(tx.CustomerPhone), nullable(tx.Notes),
		tx.Amount, string(tx.SaleType), tx.TransactionDate, tx.CreatedAt)
	return err
}

// List returns transactions newest first. An empty saleType returns all types.
func (r *MySQLSalesRepository) List(ctx context.Context, saleType domain.SaleType, limit int) ([]*domain.SalesTransaction, error) {
	query := `
        SELECT id, auction_id, car_id, customer_name, customer_email, customer_phone, notes, amount, sale_type, transaction_date, created_at
        FROM sales_transactions
        WHERE (? = '' OR sale_type = ?)
        ORDER BY transaction_date DESC
        LIMIT ?
    `
	rows, err := r.db.QueryContext(ctx, query, string(saleType), string(saleType), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []*domain.SalesTransaction
	for rows.Next() {
		var tx domain.SalesTransaction
		var auctionID, carID, phone, notes sql.NullString
		var saleType string

		err := rows.Scan(&tx.ID, &auctionID, &carID, &tx.CustomerName, &tx.CustomerEmail,
			&phone, &notes, &tx.Amount, &saleType, &tx.TransactionDate, &tx.CreatedAt)
		if err != nil {
			return nil, err
		}

		tx.AuctionID = auctionID.String
		tx.CarID = carID.String
		tx.CustomerPhone = phone.String
		tx.Notes = notes.String
		tx.SaleType = domain.SaleType(saleType)
		txs = append(txs, &tx)
	}
	return txs, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
