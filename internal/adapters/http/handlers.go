package httpadapter

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"svw.info/seatplan/internal/domain"
	"svw.info/seatplan/internal/evaluate"
	"svw.info/seatplan/internal/generator"
	"svw.info/seatplan/internal/suggest"
	"svw.info/seatplan/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/evaluate", h.handleEvaluate)
	mux.HandleFunc("/api/validate", h.handleValidate)
	mux.HandleFunc("/api/suggest", h.handleSuggest)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
	mux.Handle("/metrics", promhttp.Handler())
}

var validate = validator.New()

type errorResp struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(v)
}

// decode reads a JSON body into req and checks its tags. It answers the
// request itself and returns false on failure.
func decode(w http.ResponseWriter, r *http.Request, method string, req any) bool {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != method {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return false
	}
	if req == nil {
		return true
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid JSON: " + err.Error()})
		return false
	}
	if err := validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
		return false
	}
	return true
}

// status maps service errors onto HTTP codes.
func status(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNoFeasiblePlacement), errors.Is(err, suggest.ErrNoSafeCount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, usecase.ErrBadRequest),
		errors.Is(err, domain.ErrInvalidLayout),
		errors.Is(err, domain.ErrInvalidSeatAccess),
		errors.Is(err, domain.ErrUnsupportedGroupSize),
		errors.Is(err, generator.ErrBadParameters),
		errors.Is(err, generator.ErrTotalMismatch):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ---- Solve ----

type solveReq struct {
	Layout    domain.Layout           `json:"layout"`
	Groups    []int                   `json:"groups,omitempty" validate:"dive,min=1,max=4"`
	Supply    *generator.Distribution `json:"supply,omitempty"`
	Total     int                     `json:"total,omitempty" validate:"gte=0"`
	Strategy  string                  `json:"strategy,omitempty" validate:"omitempty,oneof=exhaustive priority naive"`
	Order     string                  `json:"order,omitempty" validate:"omitempty,oneof=desc asc random"`
	Seed      int64                   `json:"seed,omitempty"`
	Threshold float64                 `json:"threshold,omitempty" validate:"gte=0"`
	Save      bool                    `json:"save,omitempty"`
}

type solveResp struct {
	Run        *domain.Run               `json:"run,omitempty"`
	Groups     int                       `json:"groups"`
	Seated     int                       `json:"seated"`
	Probes     int                       `json:"probes"`
	DurationMs int64                     `json:"durationMs"`
	Report     *evaluate.ThresholdReport `json:"report,omitempty"`
	Saved      bool                      `json:"saved,omitempty"`
	Error      string                    `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	// validated above; empty selects the default
	strategy, _ := domain.ParseStrategy(req.Strategy)
	order, _ := domain.ParsePopOrder(req.Order)
	res, err := h.UC.Solve(r.Context(), usecase.SolveRequest{
		Layout:    req.Layout,
		Groups:    req.Groups,
		Supply:    req.Supply,
		Total:     req.Total,
		Strategy:  strategy,
		Order:     order,
		Seed:      req.Seed,
		Threshold: req.Threshold,
	})
	if res == nil {
		writeJSON(w, status(err), solveResp{Error: err.Error()})
		return
	}
	resp := solveResp{
		Run:        res.Run,
		Groups:     res.Stats.Groups,
		Seated:     res.Stats.Seated,
		Probes:     res.Stats.Probes,
		DurationMs: res.Stats.Duration.Milliseconds(),
		Report:     res.Report,
	}
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, status(err), resp)
		return
	}
	if req.Save {
		if err := h.UC.Save(r.Context(), res.Run); err != nil {
			resp.Error = err.Error()
			writeJSON(w, http.StatusInternalServerError, resp)
			return
		}
		resp.Saved = true
	}
	writeJSON(w, http.StatusOK, resp)
}

// ---- Evaluate ----

type evaluateReq struct {
	Cells     [][]int          `json:"cells" validate:"required,min=1"`
	Pitch     domain.SeatPitch `json:"pitch"`
	Threshold float64          `json:"threshold" validate:"gt=0"`
	Reduction string           `json:"reduction,omitempty" validate:"omitempty,oneof=mean total any"`
}

type evaluateResp struct {
	Nearest *float64                  `json:"nearest,omitempty"`
	Value   float64                   `json:"value"`
	Report  *evaluate.ThresholdReport `json:"report,omitempty"`
	Error   string                    `json:"error,omitempty"`
}

func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	red, _ := evaluate.ParseReduction(req.Reduction)
	ev, err := h.UC.Evaluate(r.Context(), req.Cells, req.Pitch, req.Threshold)
	if err != nil {
		writeJSON(w, status(err), evaluateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, evaluateResp{
		Nearest: ev.Nearest,
		Value:   ev.Report.Reduce(red),
		Report:  &ev.Report,
	})
}

// ---- Validate ----

type validateReq struct {
	Cells [][]int `json:"cells" validate:"required,min=1"`
}
type validateResp struct {
	OK        bool           `json:"ok"`
	Conflicts []domain.Coord `json:"conflicts,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	ok, conflicts, err := h.UC.Validate(r.Context(), req.Cells)
	if err != nil {
		writeJSON(w, status(err), validateResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, validateResp{OK: ok, Conflicts: conflicts})
}

// ---- Suggest ----

type suggestReq struct {
	Layout    domain.Layout   `json:"layout"`
	Weights   map[int]float64 `json:"weights" validate:"required,min=1,dive,keys,min=1,max=4,endkeys,gte=0"`
	Threshold float64         `json:"threshold,omitempty" validate:"gte=0"`
	Tolerance *float64        `json:"tolerance,omitempty" validate:"omitempty,gte=0,lte=1"`
	Bootstrap int             `json:"bootstrap,omitempty" validate:"gte=0,lte=10000"`
	Seed      *int64          `json:"seed,omitempty"`
}

type suggestResp struct {
	Tickets int    `json:"tickets"`
	Seats   int    `json:"seats"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	n, err := h.UC.SuggestTickets(r.Context(), req.Layout, req.Weights, usecase.SuggestOverrides{
		Threshold: req.Threshold,
		Tolerance: req.Tolerance,
		Bootstrap: req.Bootstrap,
		Seed:      req.Seed,
	})
	if err != nil {
		writeJSON(w, status(err), suggestResp{Error: err.Error()})
		return
	}
	seats := 0
	if g, err := domain.NewGrid(req.Layout); err == nil {
		seats = g.TotalSeats()
	}
	writeJSON(w, http.StatusOK, suggestResp{Tickets: n, Seats: seats})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var run domain.Run
	if !decode(w, r, http.MethodPost, &run) {
		return
	}
	if err := h.UC.Save(r.Context(), &run); err != nil {
		writeJSON(w, status(err), saveResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saveResp{ID: run.ID})
}

type loadReq struct {
	ID string `json:"id" validate:"required"`
}
type loadResp struct {
	Run   *domain.Run `json:"run,omitempty"`
	Error string      `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadReq
	if !decode(w, r, http.MethodPost, &req) {
		return
	}
	run, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		writeJSON(w, status(err), loadResp{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, loadResp{Run: run})
}

type listResp struct {
	Runs  []domain.RunMeta `json:"runs"`
	Error string           `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if !decode(w, r, http.MethodGet, nil) {
		return
	}
	runs, err := h.UC.List(r.Context())
	if err != nil {
		writeJSON(w, status(err), listResp{Error: err.Error()})
		return
	}
	if runs == nil {
		runs = []domain.RunMeta{}
	}
	writeJSON(w, http.StatusOK, listResp{Runs: runs})
}
