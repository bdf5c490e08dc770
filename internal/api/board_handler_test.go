package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkemper/driftboard-api/internal/api/shared"
	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/service"
)

// MockBoardService is a mock implementation of service.BoardService for testing
type MockBoardService struct {
	CreateBoardFn func(ctx context.Context, ownerID uuid.UUID, name string) (*service.BoardWithColumns, error)
	GetBoardFn    func(ctx context.Context, boardID uuid.UUID) (*service.BoardWithColumns, error)
}

// CreateBoard implements service.BoardService
func (m *MockBoardService) CreateBoard(
	ctx context.Context,
	ownerID uuid.UUID,
	name string,
) (*service.BoardWithColumns, error) {
	if m.CreateBoardFn != nil {
		return m.CreateBoardFn(ctx, ownerID, name)
	}
	return nil, nil
}

// GetBoard implements service.BoardService
func (m *MockBoardService) GetBoard(
	ctx context.Context,
	boardID uuid.UUID,
) (*service.BoardWithColumns, error) {
	if m.GetBoardFn != nil {
		return m.GetBoardFn(ctx, boardID)
	}
	return nil, nil
}

func newBoardRouter(svc service.BoardService) http.Handler {
	handler := NewBoardHandler(svc)
	r := chi.NewRouter()
	r.Post("/api/boards", handler.CreateBoard)
	r.Get("/api/boards/{boardID}", handler.GetBoard)
	return r
}

func fixtureBoard(t *testing.T, ownerID uuid.UUID, name string) *service.BoardWithColumns {
	t.Helper()
	board, err := domain.NewBoard(ownerID, name)
	require.NoError(t, err)

	column, err := domain.NewColumn(board.ID, "To Do", domain.ColumnTypeTodo, 0)
	require.NoError(t, err)

	return &service.BoardWithColumns{
		Board:   board,
		Columns: []*domain.Column{column},
	}
}

func TestBoardHandler_CreateBoard(t *testing.T) {
	ownerID := uuid.MustParse("11111111-1111-1111-1111-111111111111")

	t.Run("creates board for authenticated user", func(t *testing.T) {
		svc := &MockBoardService{
			CreateBoardFn: func(ctx context.Context, owner uuid.UUID, name string) (*service.BoardWithColumns, error) {
				return fixtureBoard(t, owner, name), nil
			},
		}
		router := newBoardRouter(svc)

		body, err := json.Marshal(CreateBoardRequest{Name: "House projects"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/boards", bytes.NewBuffer(body))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, ownerID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp BoardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "House projects", resp.Name)
		assert.Equal(t, ownerID.String(), resp.OwnerID)
		assert.NotEmpty(t, resp.Columns)
	})

	t.Run("rejects missing user context", func(t *testing.T) {
		svc := &MockBoardService{}
		router := newBoardRouter(svc)

		body := `{"name": "House projects"}`
		req := httptest.NewRequest(http.MethodPost, "/api/boards", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		svc := &MockBoardService{}
		router := newBoardRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/boards", bytes.NewBufferString(`{"name": ""}`))
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, ownerID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBoardHandler_GetBoard(t *testing.T) {
	boardID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	t.Run("returns board with columns", func(t *testing.T) {
		svc := &MockBoardService{
			GetBoardFn: func(ctx context.Context, id uuid.UUID) (*service.BoardWithColumns, error) {
				bw := fixtureBoard(t, uuid.New(), "Weekend")
				bw.Board.ID = id
				return bw, nil
			},
		}
		router := newBoardRouter(svc)

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/boards/%s", boardID), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp BoardResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, boardID.String(), resp.ID)
	})

	t.Run("missing board maps to 404", func(t *testing.T) {
		svc := &MockBoardService{
			GetBoardFn: func(ctx context.Context, id uuid.UUID) (*service.BoardWithColumns, error) {
				return nil, service.ErrBoardNotFound
			},
		}
		router := newBoardRouter(svc)

		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/boards/%s", boardID), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed board id maps to 400", func(t *testing.T) {
		router := newBoardRouter(&MockBoardService{})

		req := httptest.NewRequest(http.MethodGet, "/api/boards/nope", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
