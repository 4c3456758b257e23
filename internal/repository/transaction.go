package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/simplifymoney/kuberai-backend/internal/models"
)

type TransactionRepo struct {
	pool *pgxpool.Pool
}

func NewTransactionRepo(pool *pgxpool.Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Record inserts one purchase row. The timestamp is server-assigned.
func (r *TransactionRepo) Record(ctx context.Context, t *models.Transaction) (*models.Transaction, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO transactions (user_id, amount_inr, grams_purchased, gold_price_per_gram)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, amount_inr, grams_purchased, gold_price_per_gram, timestamp`,
		t.UserID, t.AmountINR, t.GramsPurchased, t.GoldPricePerGram,
	)
	return scanTransaction(row)
}

// CountByUser returns how many purchases a user has recorded.
func (r *TransactionRepo) CountByUser(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`,
		userID,
	).Scan(&count)
	return count, err
}

// GetByUser returns a user's purchases, most recent first.
func (r *TransactionRepo) GetByUser(ctx context.Context, userID int64, limit int) ([]models.Transaction, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, amount_inr, grams_purchased, gold_price_per_gram, timestamp
		 FROM transactions WHERE user_id = $1 ORDER BY timestamp DESC LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.AmountINR, &t.GramsPurchased, &t.GoldPricePerGram, &t.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanTransaction(row scannable) (*models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.AmountINR, &t.GramsPurchased, &t.GoldPricePerGram, &t.Timestamp)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
