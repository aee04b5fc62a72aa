package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type statusResponse struct {
	Kind string `json:"kind"`
	Mark string `json:"mark,omitempty"`
	Text string `json:"text"`
}

type momentResponse struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

type gameResponse struct {
	ID            string           `json:"id"`
	Board         []string         `json:"board"`
	Status        statusResponse   `json:"status"`
	HistoryLength int              `json:"history_length"`
	CurrentIndex  int              `json:"current_index"`
	Moments       []momentResponse `json:"moments"`
	Ignored       string           `json:"ignored,omitempty"`
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Index *int `json:"index"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handler) createGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.CreateGame(r.Context())
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	that.writeJSON(w, http.StatusCreated, newGameResponse(view))
}

func (that *handler) getGame(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeGameError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(view))
}

func (that *handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeGameError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handler) makeMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": 0..8}"})
		return
	}

	view, err := that.games.MakeMove(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	that.writeGameResult(w, view, err)
}

func (that *handler) jumpTo(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"index\": n}"})
		return
	}

	view, err := that.games.JumpTo(r.Context(), chi.URLParam(r, "id"), *req.Index)
	that.writeGameResult(w, view, err)
}

// writeGameResult answers a click. Occupied cells and finished games leave the board as it was.
func (that *handler) writeGameResult(w http.ResponseWriter, view *usecase.GameView, err error) {
	if err != nil && apperror.IsIgnorable(err) && view != nil {
		resp := newGameResponse(view)
		resp.Ignored = ignoredReason(err)
		that.writeJSON(w, http.StatusOK, resp)
		return
	}

	if err != nil {
		that.writeGameError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, newGameResponse(view))
}

func (that *handler) writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrIndexOutOfRange):
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperror.ErrTooManyConflicts):
		that.writeJSON(w, http.StatusConflict, errorResponse{Error: apperror.ErrTooManyConflicts.Error()})
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func ignoredReason(err error) string {
	if errors.Is(err, apperror.ErrGameOver) {
		return apperror.ErrGameOver.Error()
	}
	return apperror.ErrCellOccupied.Error()
}

func newGameResponse(view *usecase.GameView) gameResponse {
	moments := make([]momentResponse, len(view.Moments))
	for i, moment := range view.Moments {
		moments[i] = momentResponse{
			Index:   moment.Index,
			Label:   moment.Label,
			Current: moment.Current,
		}
	}

	return gameResponse{
		ID:    view.ID,
		Board: view.Board.Strings(),
		Status: statusResponse{
			Kind: view.Status.Kind,
			Mark: view.Status.Mark.String(),
			Text: view.Status.String(),
		},
		HistoryLength: view.HistoryLength,
		CurrentIndex:  view.CurrentIndex,
		Moments:       moments,
	}
}
