package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BerylCAtieno/thumbnail-review-api/internal/models"
	"github.com/BerylCAtieno/thumbnail-review-api/internal/utils"
	"github.com/jmoiron/sqlx"
)

var (
	ErrNotFound             = errors.New("thumbnail not found")
	ErrDuplicateContentHash = errors.New("thumbnail with this content hash already exists")
)

type Repository interface {
	FindByContentHash(ctx context.Context, contentHash string) (*models.Thumbnail, error)
	GetByID(ctx context.Context, id string) (*models.Thumbnail, error)
	List(ctx context.Context) ([]models.Thumbnail, error)
	Insert(ctx context.Context, thumb *models.Thumbnail) error
	Update(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error)
	Upsert(ctx context.Context, thumb *models.Thumbnail) (*models.Thumbnail, bool, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const selectColumns = `
	SELECT id, user_name, user_email, file_id, title, image_url, approval_status,
	       approval_status_reason, warning, content_hash, created_at, updated_at
	FROM thumbnails
`

func (r *repository) FindByContentHash(ctx context.Context, contentHash string) (*models.Thumbnail, error) {
	return r.getOne(ctx, selectColumns+` WHERE content_hash = ?`, contentHash)
}

func (r *repository) GetByID(ctx context.Context, id string) (*models.Thumbnail, error) {
	return r.getOne(ctx, selectColumns+` WHERE id = ?`, id)
}

func (r *repository) getOne(ctx context.Context, query string, arg any) (*models.Thumbnail, error) {
	var thumb models.Thumbnail

	err := r.db.GetContext(ctx, &thumb, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query thumbnail: %w", err)
	}

	return &thumb, nil
}

func (r *repository) List(ctx context.Context) ([]models.Thumbnail, error) {
	thumbs := []models.Thumbnail{}

	if err := r.db.SelectContext(ctx, &thumbs, selectColumns+` ORDER BY created_at, rowid`); err != nil {
		return nil, fmt.Errorf("failed to list thumbnails: %w", err)
	}

	return thumbs, nil
}

// Insert stores a new record. ID and timestamps are assigned here.
func (r *repository) Insert(ctx context.Context, thumb *models.Thumbnail) error {
	now := time.Now().UTC()
	thumb.ID = utils.GenerateID()
	thumb.CreatedAt = now
	thumb.UpdatedAt = now
	if thumb.ApprovalStatusReason == "" {
		thumb.ApprovalStatusReason = models.DefaultApprovalReason
	}

	query := `
		INSERT INTO thumbnails (id, user_name, user_email, file_id, title, image_url, approval_status,
		                        approval_status_reason, warning, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		thumb.ID,
		thumb.UserName,
		thumb.UserEmail,
		thumb.FileID,
		thumb.Title,
		thumb.ImageURL,
		thumb.ApprovalStatus,
		thumb.ApprovalStatusReason,
		thumb.Warning,
		thumb.ContentHash,
		thumb.CreatedAt,
		thumb.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateContentHash
	}
	if err != nil {
		return fmt.Errorf("failed to insert thumbnail: %w", err)
	}

	return nil
}

// Update applies the non-empty fields of upd to the record with contentHash.
func (r *repository) Update(ctx context.Context, contentHash string, upd models.ThumbnailUpdate) (*models.Thumbnail, error) {
	query := `
		UPDATE thumbnails
		SET user_name              = COALESCE(NULLIF(?, ''), user_name),
		    user_email             = COALESCE(NULLIF(?, ''), user_email),
		    file_id                = COALESCE(NULLIF(?, ''), file_id),
		    title                  = COALESCE(NULLIF(?, ''), title),
		    image_url              = COALESCE(NULLIF(?, ''), image_url),
		    approval_status        = COALESCE(NULLIF(?, ''), approval_status),
		    approval_status_reason = COALESCE(NULLIF(?, ''), approval_status_reason),
		    warning                = COALESCE(NULLIF(?, ''), warning),
		    updated_at             = ?
		WHERE content_hash = ?
	`

	res, err := r.db.ExecContext(ctx, query,
		upd.UserName,
		upd.UserEmail,
		upd.FileID,
		upd.Title,
		upd.ImageURL,
		upd.ApprovalStatus,
		upd.ApprovalStatusReason,
		upd.Warning,
		time.Now().UTC(),
		contentHash,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update thumbnail: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to update thumbnail: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}

	return r.mustFind(ctx, contentHash)
}

// Upsert inserts thumb, or writes it over the record that already owns its
// content hash. The decision and the write are one statement, so concurrent
// submissions of the same content cannot both insert. The bool result reports
// whether a new record was created.
//
// thumb must be complete: the schema rejects empty required fields before the
// conflict is resolved. On insert an empty reason becomes DefaultApprovalReason;
// on update an empty reason or warning keeps the stored one.
func (r *repository) Upsert(ctx context.Context, thumb *models.Thumbnail) (*models.Thumbnail, bool, error) {
	now := time.Now().UTC()
	id := utils.GenerateID()

	insertReason := thumb.ApprovalStatusReason
	if insertReason == "" {
		insertReason = models.DefaultApprovalReason
	}

	query := `
		INSERT INTO thumbnails (id, user_name, user_email, file_id, title, image_url, approval_status,
		                        approval_status_reason, warning, content_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (content_hash) DO UPDATE
		SET user_name              = excluded.user_name,
		    user_email             = excluded.user_email,
		    file_id                = excluded.file_id,
		    title                  = excluded.title,
		    image_url              = excluded.image_url,
		    approval_status        = excluded.approval_status,
		    approval_status_reason = COALESCE(NULLIF(?, ''), thumbnails.approval_status_reason),
		    warning                = COALESCE(NULLIF(excluded.warning, ''), thumbnails.warning),
		    updated_at             = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		id,
		thumb.UserName,
		thumb.UserEmail,
		thumb.FileID,
		thumb.Title,
		thumb.ImageURL,
		thumb.ApprovalStatus,
		insertReason,
		thumb.Warning,
		thumb.ContentHash,
		now,
		now,
		thumb.ApprovalStatusReason,
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert thumbnail: %w", err)
	}

	stored, err := r.mustFind(ctx, thumb.ContentHash)
	if err != nil {
		return nil, false, err
	}

	return stored, stored.ID == id, nil
}

func (r *repository) mustFind(ctx context.Context, contentHash string) (*models.Thumbnail, error) {
	thumb, err := r.FindByContentHash(ctx, contentHash)
	if err != nil {
		return nil, err
	}
	if thumb == nil {
		return nil, ErrNotFound
	}
	return thumb, nil
}

// isUniqueViolation matches SQLite's constraint message; the driver's error
// codes are not part of database/sql.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
