package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trafylabs/academy-api/internal/domain/profile"
	"github.com/trafylabs/academy-api/pkg/apperror"
	"github.com/trafylabs/academy-api/pkg/logger"
)

type postgresProfileRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresProfileRepo(db *pgxpool.Pool, logger logger.Logger) profile.Repository {
	return &postgresProfileRepo{db: db, logger: logger}
}

var psqlProfile = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresProfileRepo) Get(ctx context.Context, uid uuid.UUID) (*profile.Record, error) {
	query := `
		SELECT uid, first_name, last_name, email, phone, country, profile_pic_url
		FROM profiles
		WHERE uid = $1
	`
	rec := &profile.Record{}
	err := r.db.QueryRow(ctx, query, uid).Scan(
		&rec.UID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.Phone,
		&rec.Country,
		&rec.ProfilePicURL,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, profile.ErrRecordNotFound
		}
		return nil, apperror.NewInternal("failed to query profile record", err)
	}

	return rec, nil
}

func (r *postgresProfileRepo) Set(ctx context.Context, rec *profile.Record) error {
	query := `
		INSERT INTO profiles (uid, first_name, last_name, email, phone, country, profile_pic_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (uid) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			country = EXCLUDED.country,
			profile_pic_url = EXCLUDED.profile_pic_url,
			updated_at = NOW()
	`
	_, err := r.db.Exec(ctx, query,
		rec.UID, rec.FirstName, rec.LastName, rec.Email,
		rec.Phone, rec.Country, rec.ProfilePicURL,
	)
	if err != nil {
		return apperror.NewInternal("failed to upsert profile record", err)
	}
	return nil
}

// Update merges only the fields present in the patch; absent fields keep
// their stored value.
func (r *postgresProfileRepo) Update(ctx context.Context, uid uuid.UUID, patch profile.Patch) error {
	if patch.IsEmpty() {
		return nil
	}

	builder := psqlProfile.Update("profiles").Where(sq.Eq{"uid": uid})
	if patch.FirstName != nil {
		builder = builder.Set("first_name", *patch.FirstName)
	}
	if patch.LastName != nil {
		builder = builder.Set("last_name", *patch.LastName)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Phone != nil {
		builder = builder.Set("phone", *patch.Phone)
	}
	if patch.Country != nil {
		builder = builder.Set("country", *patch.Country)
	}
	if patch.ProfilePicURL != nil {
		builder = builder.Set("profile_pic_url", *patch.ProfilePicURL)
	}
	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	query, args, err := builder.ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build profile update", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperror.NewInternal("failed to update profile record", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("profile", uid.String())
	}
	return nil
}
