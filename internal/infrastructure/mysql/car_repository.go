package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dealership/internal/domain"
)

type MySQLCarRepository struct {
	db *sql.DB
}

func NewMySQLCarRepository(db *sql.DB) *MySQLCarRepository {
	return &MySQLCarRepository{db: db}
}

const carColumns = `id, name, description, price, category, year, mileage, color, engine, transmission, speed, doors, passengers, image_url, image_hover_url, status, created_at, updated_at`

func (r *MySQLCarRepository) Create(ctx context.Context, car *domain.Car) error {
	query := `
        INSERT INTO cars (` + carColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.ExecContext(ctx, query,
		car.ID, car.Name, car.Description, car.Price, car.Category,
		car.Year, car.Mileage, car.Color, car.Engine, car.Transmission,
		car.Speed, car.Doors, car.Passengers, car.ImageURL, car.ImageHoverURL,
		string(car.Status), car.CreatedAt, car.UpdatedAt)
	return err
}

func (r *MySQLCarRepository) Get(ctx context.Context, carID string) (*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE id = ?`
	car, err := scanCar(r.db.QueryRowContext(ctx, query, carID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return car, err
}

func (r *MySQLCarRepository) ListByStatus(ctx context.Context, status domain.CarStatus) ([]*domain.Car, error) {
	query := `SELECT ` + carColumns + ` FROM cars WHERE status = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cars []*domain.Car
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func (r *MySQLCarRepository) Update(ctx context.Context, car *domain.Car) error {
	query := `
        UPDATE cars
        SET name = ?, description = ?, price = ?, category = ?, year = ?, mileage = ?,
            color = ?, engine = ?, transmission = ?, speed = ?, doors = ?, passengers = ?,
            image_url = ?, image_hover_url = ?, status = ?, updated_at = ?
        WHERE id = ?
    `
	_, err := r.db.ExecContext(ctx, query,
		car.Name, car.Description, car.Price, car.Category, car.Year, car.Mileage,
		car.Color, car.Engine, car.Transmission, car.Speed, car.Doors, car.Passengers,
		car.ImageURL, car.ImageHoverURL, string(car.Status), time.Now(), car.ID)
	return err
}

func (r *MySQLCarRepository) SetStatus(ctx context.Context, carID string, status domain.CarStatus) error {
	query := `UPDATE cars SET status = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, string(status), time.Now(), carID)
	return err
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var car domain.Car
	var status string
	var description, category, color, engine, transmission, speed, imageURL, imageHoverURL sql.NullString
	var year, mileage, doors, passengers sql.NullInt64

	err := row.Scan(&car.ID, &car.Name, &description, &car.Price, &category,
		&year, &mileage, &color, &engine, &transmission, &speed,
		&doors, &passengers, &imageURL, &imageHoverURL,
		&status, &car.CreatedAt, &car.UpdatedAt)
	if err != nil {
		return nil, err
	}

	car.Description = description.String
	car.Category = category.String
	car.Color = color.String
	car.Engine = engine.String
	car.Transmission = transmission.String
	car.Speed = speed.String
	car.ImageURL = imageURL.String
	car.ImageHoverURL = imageHoverURL.String
	car.Year = int(year.Int64)
	car.Mileage = int(mileage.Int64)
	car.Doors = int(doors.Int64)
	car.Passengers = int(passengers.Int64)
	car.Status = domain.CarStatus(status)
	return &car, nil
}
