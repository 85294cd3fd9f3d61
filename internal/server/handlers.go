package server

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/ch8101040/tashmash/internal/calculation"
	"github.com/ch8101040/tashmash/internal/domain"
	"github.com/ch8101040/tashmash/internal/sentryutil"
	"github.com/ch8101040/tashmash/internal/validation"
	"github.com/ch8101040/tashmash/internal/wizard"
)

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type calculationResponse struct {
	Result *domain.CalculationResult `json:"result,omitempty"`
	Errors domain.FieldErrors        `json:"errors,omitempty"`
}

type interimResponse struct {
	Available bool                      `json:"available"`
	Result    *domain.CalculationResult `json:"result,omitempty"`
}

type validationResponse struct {
	Valid  bool               `json:"valid"`
	Errors domain.FieldErrors `json:"errors,omitempty"`
}

type categoryInfo struct {
	ID                  domain.ApplicantCategory `json:"id"`
	Title               string                   `json:"title"`
	Ceiling             string                   `json:"ceiling"`
	CanSelectNotWorking bool                     `json:"can_select_not_working"`
}

// handleCalculation validates a complete application and returns the final
// verdict, or the field errors with a 422 when validation fails.
func (s *Server) handleCalculation(ctx *fasthttp.RequestCtx) {
	st, ok := decodeState(ctx)
	if !ok {
		return
	}
	result, errs := wizard.ComputeFinal(st, s.rules)
	if !errs.Empty() {
		writeJSON(ctx, fasthttp.StatusUnprocessableEntity, calculationResponse{Errors: errs})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, calculationResponse{Result: result})
}

// handleInterim returns the live estimate for a possibly incomplete state.
func (s *Server) handleInterim(ctx *fasthttp.RequestCtx) {
	st, ok := decodeState(ctx)
	if !ok {
		return
	}
	result := calculation.ComputeInterim(st, s.rules)
	writeJSON(ctx, fasthttp.StatusOK, interimResponse{
		Available: result != nil,
		Result:    result,
	})
}

// handleValidation runs one step's validation, selected by the step query
// parameter, against the posted state.
func (s *Server) handleValidation(ctx *fasthttp.RequestCtx) {
	step, err := strconv.Atoi(string(ctx.QueryArgs().Peek("step")))
	if err != nil || step < domain.StepCategory || step > domain.StepResults {
		writeError(ctx, fasthttp.StatusBadRequest, "step must be between 1 and 4")
		return
	}
	st, ok := decodeState(ctx)
	if !ok {
		return
	}
	errs := validation.ValidateStep(step, st, s.rules)
	writeJSON(ctx, fasthttp.StatusOK, validationResponse{
		Valid:  errs.Empty(),
		Errors: errs,
	})
}

// handleCategories lists the selectable categories in presentation order.
// The hide parameter takes a comma-separated list of category identifiers
// to exclude, standing in for the hosting settings store.
func (s *Server) handleCategories(ctx *fasthttp.RequestCtx) {
	hidden := map[domain.ApplicantCategory]bool{}
	if raw := string(ctx.QueryArgs().Peek("hide")); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			hidden[domain.ApplicantCategory(strings.TrimSpace(id))] = true
		}
	}
	visible := domain.VisibleCategories(domain.AllCategories(), hidden)
	infos := make([]categoryInfo, 0, len(visible))
	for _, c := range visible {
		infos = append(infos, categoryInfo{
			ID:                  c,
			Title:               c.Title(),
			Ceiling:             s.rules.CeilingFor(c).String(),
			CanSelectNotWorking: c.CanSelectNotWorking(),
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, infos)
}

func decodeState(ctx *fasthttp.RequestCtx) (*domain.ApplicationState, bool) {
	st := domain.NewApplicationState()
	if err := json.Unmarshal(ctx.PostBody(), st); err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return nil, false
	}
	if st.Category != "" && !st.Category.Valid() {
		writeError(ctx, fasthttp.StatusBadRequest, "unknown category: "+string(st.Category))
		return nil, false
	}
	if st.IncomeMethod != domain.IncomeNone && !st.IncomeMethod.Valid() {
		writeError(ctx, fasthttp.StatusBadRequest, "unknown income method: "+string(st.IncomeMethod))
		return nil, false
	}
	return st, true
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, err := json.Marshal(payload)
	if err != nil {
		sentryutil.CaptureError(err, "encode_response")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	writeJSON(ctx, status, errorResponse{Status: status, Message: message})
}
