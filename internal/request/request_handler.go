package request

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	requesterrors "go-vacation/internal/request/errors"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/response"
	"go-vacation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// statusFilterAll is the wire value meaning "no filter". It is mapped away
// here at the boundary; the store only ever sees a concrete status.
const statusFilterAll = "All"

const idempotencyCacheTTL = 24 * time.Hour

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, logger: l}
}

func NewHandlerWithRedis(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	h := NewHandler(service, logger...)
	h.rdb = rdb
	return h
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("vacation request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	var req CreateVacationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create request validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, idempotencyCacheTTL).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// GetAll is the validator view: every request across all users, optionally
// filtered by exact status.
func (h *Handler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	statusFilter := c.Query("status")
	if statusFilter == statusFilterAll {
		statusFilter = ""
	}

	resp, err := h.service.GetAll(ctx, statusFilter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	start, end, meta := paginate(c, len(resp))
	response.Success(c, http.StatusOK, resp[start:end], meta)
}

// GetByUser is the requester view. A requester only ever sees their own
// requests; validators may inspect any user's list.
func (h *Handler) GetByUser(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := strconv.Atoi(c.Param("userId"))
	if err != nil {
		h.writeServiceError(c, requesterrors.ErrInvalidUserID)
		return
	}

	if c.GetString("role") != user.RoleValidator && c.GetInt("user_id") != userID {
		h.writeServiceError(c, requesterrors.ErrForeignOwner)
		return
	}

	resp, err := h.service.GetByUser(ctx, userID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		h.writeServiceError(c, requesterrors.ErrInvalidRequestID)
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http update status validation failed", zap.Error(err))
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateStatus(ctx, id, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// paginate slices a full result set by page/page_size query params,
// defaults 1/10, and builds the pagination meta.
func paginate(c *gin.Context, total int) (start, end int, meta *response.PaginationMeta) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	start = (page - 1) * pageSize
	end = start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	m := response.NewPaginationMeta(int64(total), page, pageSize)
	return start, end, &m
}
