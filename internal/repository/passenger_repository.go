package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/users-service/internal/domain"
)

// PassengerRepository defines persistence access for passengers.
type PassengerRepository interface {
	Save(ctx context.Context, passenger *domain.Passenger) (*domain.Passenger, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByID(ctx context.Context, id int64) (*domain.Passenger, error)
	FindByEmail(ctx context.Context, email string) (*domain.Passenger, error)
	Count(ctx context.Context) (int64, error)
}

type passengerRepository struct {
	db DBTX
}

// NewPassengerRepository returns a Postgres-backed implementation.
func NewPassengerRepository(db DBTX) PassengerRepository {
	return &passengerRepository{db: db}
}

const passengerColumns = `id, name, email, password_hash, created_at, updated_at`

func (r *passengerRepository) Save(ctx context.Context, passenger *domain.Passenger) (*domain.Passenger, error) {
	saved := *passenger
	if saved.ID == 0 {
		const query = `
        INSERT INTO passengers (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

		err := r.db.QueryRow(ctx, query,
			saved.Name,
			saved.Email,
			saved.PasswordHash,
		).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
		if err != nil {
			return nil, classify(err, "insert passenger")
		}
		return &saved, nil
	}

	const query = `
        UPDATE passengers SET name=$1, email=$2, password_hash=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		saved.Name,
		saved.Email,
		saved.PasswordHash,
		saved.ID,
	).Scan(&saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, classify(err, "update passenger")
	}
	return &saved, nil
}

func (r *passengerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM passengers WHERE email=$1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, classify(err, "passenger exists by email")
	}
	return exists, nil
}

func (r *passengerRepository) FindByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE id=$1`
	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, classify(err, "find passenger by id")
	}
	return passenger, nil
}

func (r *passengerRepository) FindByEmail(ctx context.Context, email string) (*domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE email=$1`
	passenger, err := scanPassenger(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, classify(err, "find passenger by email")
	}
	return passenger, nil
}

func (r *passengerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM passengers`).Scan(&count); err != nil {
		return 0, classify(err, "count passengers")
	}
	return count, nil
}

func scanPassenger(row pgx.Row) (*domain.Passenger, error) {
	var passenger domain.Passenger
	if err := row.Scan(
		&passenger.ID,
		&passenger.Name,
		&passenger.Email,
		&passenger.PasswordHash,
		&passenger.CreatedAt,
		&passenger.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &passenger, nil
}
