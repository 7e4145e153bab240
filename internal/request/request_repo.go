package request

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go-vacation/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const fkViolationCode = "23503"

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, vr *VacationRequest) error
	FindAll(ctx context.Context, status *string) ([]VacationRequest, error)
	FindByUser(ctx context.Context, userID int) ([]VacationRequest, error)
	FindByID(ctx context.Context, id int) (*VacationRequest, error)
	Update(ctx context.Context, vr *VacationRequest) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds writes to an open transaction so a request mutation and its
// outbox event commit together. Reads outside the transaction keep using
// the GORM connection.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, vr *VacationRequest) error {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			INSERT INTO vacation_requests (user_id, start_date, end_date, reason, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			RETURNING id, created_at`,
			vr.UserID, vr.StartDate, vr.EndDate, vr.Reason, vr.Status,
		)
		if err := row.Scan(&vr.ID, &vr.CreatedAt); err != nil {
			return mapWriteError(err)
		}
		return nil
	}
	return mapWriteError(r.db.WithContext(ctx).Omit("Owner").Create(vr).Error)
}

func (r *repository) FindAll(ctx context.Context, status *string) ([]VacationRequest, error) {
	q := r.db.WithContext(ctx).
		Joins("Owner").
		Order("vacation_requests.created_at DESC")

	if status != nil && *status != "" {
		q = q.Where("vacation_requests.status = ?", *status)
	}

	var requests []VacationRequest
	err := q.Find(&requests).Error
	return requests, err
}

func (r *repository) FindByUser(ctx context.Context, userID int) ([]VacationRequest, error) {
	var requests []VacationRequest
	err := r.db.WithContext(ctx).
		Joins("Owner").
		Where("vacation_requests.user_id = ?", userID).
		Order("vacation_requests.created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByID(ctx context.Context, id int) (*VacationRequest, error) {
	if r.tx != nil {
		row := r.tx.QueryRowContext(ctx, `
			SELECT id, user_id, start_date, end_date, COALESCE(reason, ''), status, comments, created_at
			FROM vacation_requests
			WHERE id = $1`,
			id,
		)
		var vr VacationRequest
		var comments sql.NullString
		err := row.Scan(
			&vr.ID, &vr.UserID, &vr.StartDate, &vr.EndDate,
			&vr.Reason, &vr.Status, &comments, &vr.CreatedAt,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// keeps not-found detection uniform across both paths
				return nil, gorm.ErrRecordNotFound
			}
			return nil, err
		}
		if comments.Valid {
			vr.Comments = &comments.String
		}
		return &vr, nil
	}

	var vr VacationRequest
	err := r.db.WithContext(ctx).Joins("Owner").First(&vr, "vacation_requests.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vr, nil
}

func (r *repository) Update(ctx context.Context, vr *VacationRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			UPDATE vacation_requests
			SET status = $1, comments = $2, updated_at = NOW()
			WHERE id = $3`,
			vr.Status, vr.Comments, vr.ID,
		)
		return mapWriteError(err)
	}
	return mapWriteError(r.db.WithContext(ctx).Omit("Owner").Save(vr).Error)
}

// mapWriteError classifies storage failures. A foreign-key violation means
// the referenced user does not exist; the caller still sees a generic
// persistence failure because the detail is an internal concern.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == fkViolationCode {
		return apperror.Wrap(err,
			apperror.CodeInternalError,
			"failed to persist vacation request",
			http.StatusInternalServerError,
		)
	}
	return err
}
