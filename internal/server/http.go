package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/xtding233/hoops-rotation/internal/planner"
	"github.com/xtding233/hoops-rotation/internal/rotation"
	"github.com/xtding233/hoops-rotation/internal/store"
)

// Player numbers are roster slots (0-based, as in the snapshot); game and
// period numbers are 1-based, as in the cursor.

type errResp struct {
	Err string `json:"err"`
}

type setupReq struct {
	Players    []string `json:"players"`
	UseCurated *bool    `json:"useCurated"`
}

type httpHandler struct {
	planner *planner.Planner
	logger  *zap.Logger
}

// NewHTTPHandler routes the planner's operations.
func NewHTTPHandler(p *planner.Planner, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &httpHandler{planner: p, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /state", h.handleState)
	mux.HandleFunc("GET /history", h.handleHistory)
	mux.HandleFunc("POST /setup", h.handleSetup)
	mux.HandleFunc("POST /advance", h.handleAdvance)
	mux.HandleFunc("POST /toggle", h.handleToggle)
	mux.HandleFunc("POST /reorder", h.handleReorder)
	mux.HandleFunc("POST /rename", h.handleRename)
	mux.HandleFunc("POST /cell", h.handleCell)
	mux.HandleFunc("POST /regenerate", h.handleRegenerate)
	mux.HandleFunc("POST /new_game", h.handleNewGame)
	mux.HandleFunc("POST /clear", h.handleClear)
	mux.HandleFunc("POST /restore", h.handleRestore)
	return mux
}

func parseInt(r *http.Request, key string) (int, bool, string) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, ""
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, "invalid " + key
	}
	return v, true, ""
}

// requireInt reads a mandatory integer query parameter, writing the 400 itself.
func requireInt(w http.ResponseWriter, r *http.Request, key string) (int, bool) {
	v, ok, msg := parseInt(r, key)
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return 0, false
	}
	if !ok {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "missing param " + key})
		return 0, false
	}
	return v, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// reply writes an outcome or maps err to a status code.
func (h *httpHandler) reply(w http.ResponseWriter, r *http.Request, out planner.Outcome, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= 500 {
			h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		}
		writeJSON(w, status, errResp{Err: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rotation.ErrNotEnoughActive):
		return http.StatusConflict
	case errors.Is(err, rotation.ErrPlayerRange),
		errors.Is(err, rotation.ErrPeriodRange),
		errors.Is(err, rotation.ErrEmptyRoster),
		errors.Is(err, rotation.ErrInvalidCursor):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *httpHandler) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.planner.Snapshot())
}

func (h *httpHandler) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit, _, msg := parseInt(r, "limit")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	revs, err := h.planner.History(r.Context(), limit)
	if err != nil {
		h.reply(w, r, planner.Outcome{}, err)
		return
	}
	writeJSON(w, http.StatusOK, revs)
}

func (h *httpHandler) handleSetup(w http.ResponseWriter, r *http.Request) {
	var req setupReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "invalid body"})
		return
	}
	useCurated := true
	if req.UseCurated != nil {
		useCurated = *req.UseCurated
	}
	out, err := h.planner.Setup(r.Context(), req.Players, useCurated)
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleAdvance(w http.ResponseWriter, r *http.Request) {
	delta, ok, msg := parseInt(r, "delta")
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: msg})
		return
	}
	if !ok {
		delta = 1
	}
	out, err := h.planner.Advance(r.Context(), delta)
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleToggle(w http.ResponseWriter, r *http.Request) {
	slot, ok := requireInt(w, r, "player")
	if !ok {
		return
	}
	out, err := h.planner.Toggle(r.Context(), slot)
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleReorder(w http.ResponseWriter, r *http.Request) {
	from, ok := requireInt(w, r, "from")
	if !ok {
		return
	}
	to, ok := requireInt(w, r, "to")
	if !ok {
		return
	}
	out, err := h.planner.Reorder(r.Context(), from, to)
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleRename(w http.ResponseWriter, r *http.Request) {
	slot, ok := requireInt(w, r, "player")
	if !ok {
		return
	}
	out, err := h.planner.Rename(r.Context(), slot, r.URL.Query().Get("name"))
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleCell(w http.ResponseWriter, r *http.Request) {
	game, ok := requireInt(w, r, "game")
	if !ok {
		return
	}
	slot, ok := requireInt(w, r, "player")
	if !ok {
		return
	}
	period, ok := requireInt(w, r, "period")
	if !ok {
		return
	}
	value, ok := requireInt(w, r, "value")
	if !ok {
		return
	}
	if value != 0 && value != 1 {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "value must be 0 or 1"})
		return
	}
	out, err := h.planner.SetCell(r.Context(), game-1, slot, period-1, value == 1)
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	out, err := h.planner.Regenerate(r.Context())
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	out, err := h.planner.NewGame(r.Context())
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleClear(w http.ResponseWriter, r *http.Request) {
	out, err := h.planner.Clear(r.Context())
	h.reply(w, r, out, err)
}

func (h *httpHandler) handleRestore(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "missing param id"})
		return
	}
	out, err := h.planner.Restore(r.Context(), id)
	h.reply(w, r, out, err)
}
