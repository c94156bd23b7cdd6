package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/vadimbarashkov/shortlink/internal/entity"
)

const uniqueViolationErrCode = "23505"

func isUniqueViolationError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.SQLState() == uniqueViolationErrCode
}

type urlDB struct {
	ID        int64     `db:"id"`
	TargetURL string    `db:"target_url"`
	Key       string    `db:"key"`
	SecretKey string    `db:"secret_key"`
	IsActive  bool      `db:"is_active"`
	Clicks    int64     `db:"clicks"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (u *urlDB) toEntity() *entity.URL {
	return &entity.URL{
		ID:        u.ID,
		TargetURL: u.TargetURL,
		Key:       u.Key,
		SecretKey: u.SecretKey,
		State:     entity.StateFromActive(u.IsActive),
		Clicks:    u.Clicks,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type URLRepository struct {
	db *sqlx.DB
}

func NewURLRepository(db *sqlx.DB) *URLRepository {
	return &URLRepository{db: db}
}

func (r *URLRepository) Save(ctx context.Context, key, secretKey, targetURL string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.Save"
	const query = `INSERT INTO urls(key, secret_key, target_url) VALUES ($1, $2, $3) RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, key, secretKey, targetURL); err != nil {
		if isUniqueViolationError(err) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrKeyExists)
		}

		return nil, fmt.Errorf("%s: failed to insert into urls table: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveByKey(ctx context.Context, key string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveByKey"
	const query = `SELECT * FROM urls WHERE key = $1 AND is_active`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return url.toEntity(), nil
}

func (r *URLRepository) RetrieveBySecretKey(ctx context.Context, secretKey string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.RetrieveBySecretKey"
	const query = `SELECT * FROM urls WHERE secret_key = $1 AND is_active`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, secretKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to get row from urls table: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return url.toEntity(), nil
}

// IncrementClicks bumps the click counter in a single statement so that
// concurrent redirects never lose an update.
func (r *URLRepository) IncrementClicks(ctx context.Context, url *entity.URL) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.IncrementClicks"
	const query = `UPDATE urls SET clicks = clicks + 1, updated_at = NOW() WHERE id = $1 AND is_active RETURNING *`

	var updated urlDB

	if err := r.db.GetContext(ctx, &updated, query, url.ID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update urls table row: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return updated.toEntity(), nil
}

func (r *URLRepository) DeactivateBySecretKey(ctx context.Context, secretKey string) (*entity.URL, error) {
	const op = "adapter.repository.postgres.URLRepository.DeactivateBySecretKey"
	const query = `UPDATE urls SET is_active = FALSE, updated_at = NOW() WHERE secret_key = $1 AND is_active RETURNING *`

	var url urlDB

	if err := r.db.GetContext(ctx, &url, query, secretKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, entity.ErrURLNotFound)
		}

		return nil, fmt.Errorf("%s: failed to update urls table row: %w: %w", op, entity.ErrStorageUnavailable, err)
	}

	return url.toEntity(), nil
}
