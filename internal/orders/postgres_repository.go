package orders

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"github.com/SunnieP/analytics-training-demo/internal/domain"
)

type Credentials struct {
	Host              string
	Port              int
	User              string
	Password          string
	DBName            string
	MigrationsDirPath string
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(cred *Credentials) (*PostgresRepository, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cred.Host,
		cred.Port,
		cred.User,
		cred.Password,
		cred.DBName)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) RunMigrations(cred *Credentials) error {
	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", cred.MigrationsDirPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) SaveTransaction(ctx context.Context, txn *domain.Transaction) error {
	itemsJSON, err := json.Marshal(txn.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction items: %w", err)
	}

	query := `
		INSERT INTO transactions
			(id, session_id, payment_method, coupon, subtotal, shipping, tax, discount, total, items, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query,
		txn.ID,
		txn.SessionID,
		txn.PaymentMethod,
		txn.PromoCode,
		txn.Totals.Subtotal,
		txn.Totals.ShippingCost,
		txn.Totals.Tax,
		txn.Totals.Discount,
		txn.Totals.Total,
		itemsJSON,
		txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, session_id, payment_method, coupon, subtotal, shipping, tax, discount, total, items, created_at
		FROM transactions
		WHERE id = $1
	`

	var txn domain.Transaction
	var itemsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&txn.ID,
		&txn.SessionID,
		&txn.PaymentMethod,
		&txn.PromoCode,
		&txn.Totals.Subtotal,
		&txn.Totals.ShippingCost,
		&txn.Totals.Tax,
		&txn.Totals.Discount,
		&txn.Totals.Total,
		&itemsJSON,
		&txn.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	if err := json.Unmarshal(itemsJSON, &txn.Items); err != nil {
		return nil, fmt.Errorf("failed to decode transaction items: %w", err)
	}

	return &txn, nil
}
