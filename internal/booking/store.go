package booking

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGQuoteStore writes quotes to postgres.
type PGQuoteStore struct {
	db DB
}

func NewPGQuoteStore(db DB) *PGQuoteStore {
	return &PGQuoteStore{db: db}
}

func (s *PGQuoteStore) CreateQuote(ctx context.Context, q *Quote) error {
	err := s.db.QueryRow(ctx,
		`INSERT INTO quotes (id, tenant_id, name, phone, email, service, message)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		q.ID, q.TenantID, q.Name, q.Phone, q.Email, q.Service, q.Message,
	).Scan(&q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}
