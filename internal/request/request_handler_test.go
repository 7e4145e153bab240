package request_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-vacation/internal/request"
	requesterrors "go-vacation/internal/request/errors"
	"go-vacation/internal/shared/response"
	"go-vacation/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeRequestService struct {
	submitFn       func(ctx context.Context, req request.CreateVacationRequest) (request.VacationRequestResponse, error)
	getAllFn       func(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error)
	getByUserFn    func(ctx context.Context, userID int) ([]request.VacationRequestResponse, error)
	updateStatusFn func(ctx context.Context, id int, req request.UpdateStatusRequest) (request.VacationRequestResponse, error)
}

func (f *fakeRequestService) Submit(ctx context.Context, req request.CreateVacationRequest) (request.VacationRequestResponse, error) {
	return f.submitFn(ctx, req)
}

func (f *fakeRequestService) GetAll(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error) {
	return f.getAllFn(ctx, statusFilter)
}

func (f *fakeRequestService) GetByUser(ctx context.Context, userID int) ([]request.VacationRequestResponse, error) {
	return f.getByUserFn(ctx, userID)
}

func (f *fakeRequestService) UpdateStatus(ctx context.Context, id int, req request.UpdateStatusRequest) (request.VacationRequestResponse, error) {
	return f.updateStatusFn(ctx, id, req)
}

type testEnvelope struct {
	Ok    bool                     `json:"ok"`
	Data  json.RawMessage          `json:"data"`
	Meta  *response.PaginationMeta `json:"meta"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) testEnvelope {
	t.Helper()
	var env testEnvelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newTestContext(t *testing.T, method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestRequestHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, req request.CreateVacationRequest) (request.VacationRequestResponse, error) {
				assert.Equal(t, 1, req.UserID)
				return request.VacationRequestResponse{
					ID:        7,
					UserID:    1,
					StartDate: "2025-06-01",
					EndDate:   "2025-06-05",
					TotalDays: 5,
					Status:    request.StatusPending,
				}, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/requests",
			`{"user_id":1,"start_date":"2025-06-01","end_date":"2025-06-05","reason":"Summer trip"}`)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)

		var resp request.VacationRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 7, resp.ID)
		assert.Equal(t, request.StatusPending, resp.Status)
		assert.Equal(t, 5, resp.TotalDays)
	})

	t.Run("negative missing body fields", func(t *testing.T) {
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, req request.CreateVacationRequest) (request.VacationRequestResponse, error) {
				t.Fatal("service must not be called")
				return request.VacationRequestResponse{}, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/requests", `{"reason":"no dates"}`)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative end before start", func(t *testing.T) {
		svc := &fakeRequestService{
			submitFn: func(ctx context.Context, req request.CreateVacationRequest) (request.VacationRequestResponse, error) {
				return request.VacationRequestResponse{}, requesterrors.ErrInvalidDateRange
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPost, "/requests",
			`{"user_id":1,"start_date":"2025-06-10","end_date":"2025-06-05"}`)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})
}

func TestRequestHandler_GetAll(t *testing.T) {
	sample := []request.VacationRequestResponse{
		{ID: 3, UserID: 1, Status: request.StatusPending},
		{ID: 2, UserID: 2, Status: request.StatusApproved},
		{ID: 1, UserID: 1, Status: request.StatusRejected},
	}

	t.Run("success maps All to no filter", func(t *testing.T) {
		svc := &fakeRequestService{
			getAllFn: func(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error) {
				assert.Equal(t, "", statusFilter)
				return sample, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests?status=All", "")
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)

		var resp []request.VacationRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Len(t, resp, 3)
		assert.Equal(t, int64(3), env.Meta.Total)
	})

	t.Run("success forwards concrete status", func(t *testing.T) {
		svc := &fakeRequestService{
			getAllFn: func(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error) {
				assert.Equal(t, request.StatusPending, statusFilter)
				return sample[:1], nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests?status=Pending", "")
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("success second page", func(t *testing.T) {
		svc := &fakeRequestService{
			getAllFn: func(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error) {
				return sample, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests?page=2&page_size=2", "")
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)

		var resp []request.VacationRequestResponse
		assert.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Len(t, resp, 1)
		assert.Equal(t, 1, resp[0].ID)
		assert.Equal(t, 2, env.Meta.Page)
		assert.Equal(t, 2, env.Meta.TotalPages)
	})

	t.Run("negative service error", func(t *testing.T) {
		svc := &fakeRequestService{
			getAllFn: func(ctx context.Context, statusFilter string) ([]request.VacationRequestResponse, error) {
				return nil, assert.AnError
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests", "")
		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w)
		assert.False(t, env.Ok)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}

func TestRequestHandler_GetByUser(t *testing.T) {
	t.Run("success owner views own requests", func(t *testing.T) {
		svc := &fakeRequestService{
			getByUserFn: func(ctx context.Context, userID int) ([]request.VacationRequestResponse, error) {
				assert.Equal(t, 2, userID)
				return []request.VacationRequestResponse{{ID: 5, UserID: 2}}, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests/user/2", "")
		c.Params = gin.Params{{Key: "userId", Value: "2"}}
		c.Set("role", user.RoleRequester)
		c.Set("user_id", 2)
		h.GetByUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
	})

	t.Run("success validator views any user", func(t *testing.T) {
		svc := &fakeRequestService{
			getByUserFn: func(ctx context.Context, userID int) ([]request.VacationRequestResponse, error) {
				assert.Equal(t, 2, userID)
				return nil, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests/user/2", "")
		c.Params = gin.Params{{Key: "userId", Value: "2"}}
		c.Set("role", user.RoleValidator)
		c.Set("user_id", 4)
		h.GetByUser(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative requester views foreign user", func(t *testing.T) {
		svc := &fakeRequestService{
			getByUserFn: func(ctx context.Context, userID int) ([]request.VacationRequestResponse, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodGet, "/requests/user/2", "")
		c.Params = gin.Params{{Key: "userId", Value: "2"}}
		c.Set("role", user.RoleRequester)
		c.Set("user_id", 1)
		h.GetByUser(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("negative non-numeric user id", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{})

		c, w := newTestContext(t, http.MethodGet, "/requests/user/abc", "")
		c.Params = gin.Params{{Key: "userId", Value: "abc"}}
		h.GetByUser(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRequestHandler_UpdateStatus(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeRequestService{
			updateStatusFn: func(ctx context.Context, id int, req request.UpdateStatusRequest) (request.VacationRequestResponse, error) {
				assert.Equal(t, 7, id)
				assert.Equal(t, request.StatusApproved, req.Status)
				return request.VacationRequestResponse{ID: 7, Status: request.StatusApproved}, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPut, "/requests/7/status", `{"status":"Approved"}`)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w)
		assert.True(t, env.Ok)
	})

	t.Run("negative status outside enum", func(t *testing.T) {
		svc := &fakeRequestService{
			updateStatusFn: func(ctx context.Context, id int, req request.UpdateStatusRequest) (request.VacationRequestResponse, error) {
				t.Fatal("service must not be called")
				return request.VacationRequestResponse{}, nil
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPut, "/requests/7/status", `{"status":"Maybe"}`)
		c.Params = gin.Params{{Key: "id", Value: "7"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative unknown id", func(t *testing.T) {
		svc := &fakeRequestService{
			updateStatusFn: func(ctx context.Context, id int, req request.UpdateStatusRequest) (request.VacationRequestResponse, error) {
				return request.VacationRequestResponse{}, requesterrors.ErrRequestNotFound
			},
		}
		h := request.NewHandler(svc)

		c, w := newTestContext(t, http.MethodPut, "/requests/404/status", `{"status":"Approved"}`)
		c.Params = gin.Params{{Key: "id", Value: "404"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})

	t.Run("negative non-numeric id", func(t *testing.T) {
		h := request.NewHandler(&fakeRequestService{})

		c, w := newTestContext(t, http.MethodPut, "/requests/abc/status", `{"status":"Approved"}`)
		c.Params = gin.Params{{Key: "id", Value: "abc"}}
		h.UpdateStatus(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
