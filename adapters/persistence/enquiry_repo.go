package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trafylabs/academy-api/internal/domain/enquiry"
	"github.com/trafylabs/academy-api/pkg/apperror"
)

type postgresEnquiryRepo struct {
	db *pgxpool.Pool
}

func NewPostgresEnquiryRepo(db *pgxpool.Pool) enquiry.Repository {
	return &postgresEnquiryRepo{db: db}
}

func (r *postgresEnquiryRepo) Save(ctx context.Context, e *enquiry.Enquiry) error {
	query := `
		INSERT INTO enquiries (id, course, first_name, last_name, email, phone, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		e.ID, e.Course, e.FirstName, e.LastName,
		e.Email, e.Phone, e.Message, e.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save enquiry", err)
	}
	return nil
}
