package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/dkemper/driftboard-api/internal/api/middleware"
	"github.com/dkemper/driftboard-api/internal/api/shared"
	"github.com/dkemper/driftboard-api/internal/domain"
	"github.com/dkemper/driftboard-api/internal/service"
)

// CreateBoardRequest represents the request body for creating a new board
type CreateBoardRequest struct {
	Name string `json:"name" validate:"required,min=1"`
}

// ColumnResponse represents the response data for a column
type ColumnResponse struct {
	ID       string `json:"id"`
	BoardID  string `json:"board_id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Position int    `json:"position"`
}

// BoardResponse represents the response data for a board with its columns
type BoardResponse struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"owner_id"`
	Name      string           `json:"name"`
	Columns   []ColumnResponse `json:"columns"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// BoardHandler handles board-related HTTP requests
type BoardHandler struct {
	boardService service.BoardService
	validator    *validator.Validate
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(boardService service.BoardService) *BoardHandler {
	return &BoardHandler{
		boardService: boardService,
		validator:    validator.New(),
	}
}

// CreateBoard handles POST /api/boards requests. The authenticated user
// becomes the board owner.
func (h *BoardHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateBoardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	board, err := h.boardService.CreateBoard(r.Context(), ownerID, req.Name)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, boardToDTOResponse(board))
}

// GetBoard handles GET /api/boards/{boardID} requests
func (h *BoardHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardID, err := domain.ParseBoardID(chi.URLParam(r, "boardID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	board, err := h.boardService.GetBoard(r.Context(), boardID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, boardToDTOResponse(board))
}

// boardToDTOResponse converts a service.BoardWithColumns to a BoardResponse
func boardToDTOResponse(bw *service.BoardWithColumns) BoardResponse {
	columns := make([]ColumnResponse, 0, len(bw.Columns))
	for _, column := range bw.Columns {
		columns = append(columns, ColumnResponse{
			ID:       column.ID.String(),
			BoardID:  column.BoardID.String(),
			Name:     column.Name,
			Type:     string(column.Type),
			Position: column.Position,
		})
	}

	return BoardResponse{
		ID:        bw.Board.ID.String(),
		OwnerID:   bw.Board.OwnerID.String(),
		Name:      bw.Board.Name,
		Columns:   columns,
		CreatedAt: bw.Board.CreatedAt,
		UpdatedAt: bw.Board.UpdatedAt,
	}
}
