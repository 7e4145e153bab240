package request

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-vacation/internal/events"
	"go-vacation/internal/messaging/kafka"
	requesterrors "go-vacation/internal/request/errors"
	"go-vacation/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "vacation_request"

type Service interface {
	Submit(ctx context.Context, req CreateVacationRequest) (VacationRequestResponse, error)
	GetAll(ctx context.Context, statusFilter string) ([]VacationRequestResponse, error)
	GetByUser(ctx context.Context, userID int) ([]VacationRequestResponse, error)
	UpdateStatus(ctx context.Context, id int, req UpdateStatusRequest) (VacationRequestResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("request.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Submit(ctx context.Context, req CreateVacationRequest) (VacationRequestResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("submit request requested",
		zap.Int("user_id", req.UserID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := ValidateSubmission(req)
	if err != nil {
		logger.Warn("submit request validation failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("submit request begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	vr := &VacationRequest{
		UserID:    req.UserID,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
		Status:    StatusPending,
	}
	if err := qtx.Create(ctx, vr); err != nil {
		logger.Error("submit request persist failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := s.enqueueSubmitted(ctx, tx, vr); err != nil {
		logger.Error("submit request outbox enqueue failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("submit request commit failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	logger.Info("submit request success",
		zap.Int("request_id", vr.ID),
		zap.Int("user_id", vr.UserID),
	)
	return mapToResponse(*vr), nil
}

func (s *service) GetAll(ctx context.Context, statusFilter string) ([]VacationRequestResponse, error) {
	var status *string
	if statusFilter != "" {
		status = &statusFilter
	}

	requests, err := s.repo.FindAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByUser(ctx context.Context, userID int) ([]VacationRequestResponse, error) {
	requests, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) UpdateStatus(ctx context.Context, id int, req UpdateStatusRequest) (VacationRequestResponse, error) {
	logger := contextutil.GetLogger(ctx, s.logger)
	logger.Debug("update status requested",
		zap.Int("request_id", id),
		zap.String("target_status", req.Status),
	)

	if !IsValidStatus(req.Status) {
		logger.Warn("update status rejected",
			zap.Int("request_id", id),
			zap.String("target_status", req.Status),
		)
		return VacationRequestResponse{}, requesterrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		logger.Error("update status begin tx failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	vr, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return VacationRequestResponse{}, requesterrors.ErrRequestNotFound
		}
		return VacationRequestResponse{}, err
	}

	// A validator can revise a decision, so any legal status may replace
	// any other; transitions are not restricted to Pending origins.
	fromStatus := vr.Status
	vr.Status = req.Status
	vr.Comments = req.Comments

	if err := qtx.Update(ctx, vr); err != nil {
		logger.Error("update status persist failed",
			zap.Int("request_id", id),
			zap.Error(err),
		)
		return VacationRequestResponse{}, err
	}

	if err := s.enqueueStatusChanged(ctx, tx, vr, fromStatus); err != nil {
		logger.Error("update status outbox enqueue failed", zap.Error(err))
		return VacationRequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		logger.Error("update status commit failed",
			zap.Int("request_id", id),
			zap.Error(err),
		)
		return VacationRequestResponse{}, err
	}

	logger.Info("update status success",
		zap.Int("request_id", id),
		zap.String("from_status", fromStatus),
		zap.String("to_status", vr.Status),
	)
	return mapToResponse(*vr), nil
}

func (s *service) enqueueSubmitted(ctx context.Context, tx *sql.Tx, vr *VacationRequest) error {
	payload, err := json.Marshal(events.RequestSubmittedEvent{
		EventType:  events.RequestSubmittedEventType,
		RequestID:  vr.ID,
		UserID:     vr.UserID,
		StartDate:  vr.StartDate.Format(dateLayout),
		EndDate:    vr.EndDate.Format(dateLayout),
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   strconv.Itoa(vr.ID),
		EventType:     events.RequestSubmittedEventType,
		Topic:         events.RequestLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) enqueueStatusChanged(ctx context.Context, tx *sql.Tx, vr *VacationRequest, fromStatus string) error {
	payload, err := json.Marshal(events.RequestStatusChangedEvent{
		EventType:  events.RequestStatusChangedEventType,
		RequestID:  vr.ID,
		UserID:     vr.UserID,
		FromStatus: fromStatus,
		ToStatus:   vr.Status,
		Comments:   vr.Comments,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregateType,
		AggregateID:   strconv.Itoa(vr.ID),
		EventType:     events.RequestStatusChangedEventType,
		Topic:         events.RequestLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func mapToResponse(vr VacationRequest) VacationRequestResponse {
	resp := VacationRequestResponse{
		ID:        vr.ID,
		UserID:    vr.UserID,
		StartDate: vr.StartDate.Format(dateLayout),
		EndDate:   vr.EndDate.Format(dateLayout),
		TotalDays: DurationDays(vr.StartDate, vr.EndDate),
		Reason:    vr.Reason,
		Status:    vr.Status,
		Comments:  vr.Comments,
		CreatedAt: vr.CreatedAt.UTC().Format(time.RFC3339),
	}
	if vr.Owner != nil {
		resp.UserName = vr.Owner.Name
	}
	return resp
}

func mapToListResponse(requests []VacationRequest) []VacationRequestResponse {
	resp := make([]VacationRequestResponse, len(requests))
	for i, vr := range requests {
		resp[i] = mapToResponse(vr)
	}
	return resp
}
