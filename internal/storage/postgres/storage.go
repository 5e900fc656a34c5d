package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/streakmart/internal/domain/errors"
	"github.com/polkiloo/streakmart/internal/domain/model"
	"github.com/polkiloo/streakmart/internal/domain/repository"
	"github.com/polkiloo/streakmart/internal/leaderboard"
)

// pgxPool is the subset of pgxpool.Pool the storage needs, extracted so
// tests can substitute a pgxmock pool.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type purchaseRepository struct {
	storage *Storage
}

type commentRepository struct {
	storage *Storage
}

type leaderboardRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Purchases() repository.PurchaseRepository {
	return &purchaseRepository{storage: s}
}

func (s *Storage) Comments() repository.CommentRepository {
	return &commentRepository{storage: s}
}

// Leaderboard returns the database-backed variant of the leaderboard cache.
func (s *Storage) Leaderboard() leaderboard.Cache {
	return &leaderboardRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            username TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            streak INT NOT NULL DEFAULT 0,
            last_login_date DATE,
            refresh_token_hash TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS purchases (
            id SERIAL PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            product_id BIGINT NOT NULL,
            title TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL,
            thumbnail TEXT NOT NULL,
            purchased_at BIGINT NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS comments (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            username TEXT NOT NULL,
            body TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS leaderboard_cache (
            position INT PRIMARY KEY,
            username TEXT NOT NULL,
            streak INT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_purchases_user ON purchases(user_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_comments_created ON comments(created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, username, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (id, username, password_hash, streak, last_login_date)
                   VALUES ($1, $2, $3, 0, NULL) RETURNING created_at`
	id := uuid.NewString()
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id, username, passwordHash).Scan(&u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.ID = id
	u.Username = username
	u.PasswordHash = passwordHash
	return &u, nil
}

const userColumns = `id, username, password_hash, streak, last_login_date, refresh_token_hash, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Streak, &u.LastLoginDate, &u.RefreshTokenHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, username))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateLoginStreak(ctx context.Context, id string, streak int, lastLogin time.Time) error {
	const query = `UPDATE users SET streak=$1, last_login_date=$2 WHERE id=$3`
	tag, err := r.storage.pool.Exec(ctx, query, streak, lastLogin, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateStreak(ctx context.Context, id string, streak int) error {
	const query = `UPDATE users SET streak=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, streak, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateRefreshToken(ctx context.Context, id string, hash *string) error {
	const query = `UPDATE users SET refresh_token_hash=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Streak, &u.LastLoginDate, &u.RefreshTokenHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- PurchaseRepository implementation ---

func (r *purchaseRepository) Append(ctx context.Context, userID string, items []model.PurchaseItem) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const query = `INSERT INTO purchases (user_id, product_id, title, price, thumbnail, purchased_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`
		for _, item := range items {
			if _, err := tx.Exec(ctx, query, userID, item.ProductID, item.Title, item.Price, item.Thumbnail, item.Timestamp); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string, offset, limit int) ([]model.PurchaseItem, error) {
	const query = `SELECT product_id, title, price, thumbnail, purchased_at
                   FROM purchases WHERE user_id=$1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PurchaseItem
	for rows.Next() {
		var item model.PurchaseItem
		if err := rows.Scan(&item.ProductID, &item.Title, &item.Price, &item.Thumbnail, &item.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CommentRepository implementation ---

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `INSERT INTO comments (id, user_id, username, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	_, err := r.storage.pool.Exec(ctx, query, comment.ID, comment.UserID, comment.Username, comment.Text, comment.CreatedAt)
	return err
}

func (r *commentRepository) List(ctx context.Context) ([]model.Comment, error) {
	const query = `SELECT id, user_id, username, body, created_at FROM comments ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Comment
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- leaderboard.Cache implementation ---

func (r *leaderboardRepository) Upsert(ctx context.Context, entry leaderboard.Entry) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		entries, err := readEntriesTx(ctx, tx)
		if err != nil {
			return err
		}
		return writeEntriesTx(ctx, tx, leaderboard.ApplyUpsert(entries, entry))
	})
}

func (r *leaderboardRepository) Rebuild(ctx context.Context, entries []leaderboard.Entry) error {
	sorted := make([]leaderboard.Entry, len(entries))
	copy(sorted, entries)
	leaderboard.SortEntries(sorted)
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return writeEntriesTx(ctx, tx, sorted)
	})
}

func (r *leaderboardRepository) Top(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	const query = `SELECT username, streak FROM leaderboard_cache ORDER BY position LIMIT $1`
	return r.readEntries(ctx, query, n)
}

func (r *leaderboardRepository) All(ctx context.Context) ([]leaderboard.Entry, error) {
	const query = `SELECT username, streak FROM leaderboard_cache ORDER BY position`
	return r.readEntries(ctx, query)
}

func (r *leaderboardRepository) readEntries(ctx context.Context, query string, args ...any) ([]leaderboard.Entry, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func readEntriesTx(ctx context.Context, tx pgx.Tx) ([]leaderboard.Entry, error) {
	rows, err := tx.Query(ctx, `SELECT username, streak FROM leaderboard_cache ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]leaderboard.Entry, error) {
	entries := []leaderboard.Entry{}
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.Username, &e.Streak); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeEntriesTx(ctx context.Context, tx pgx.Tx, entries []leaderboard.Entry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM leaderboard_cache`); err != nil {
		return err
	}
	const insert = `INSERT INTO leaderboard_cache (position, username, streak) VALUES ($1, $2, $3)`
	for i, e := range entries {
		if _, err := tx.Exec(ctx, insert, i, e.Username, e.Streak); err != nil {
			return err
		}
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
