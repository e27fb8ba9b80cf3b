package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/commerce-atlas/pkg/adapters"
	"github.com/de-tools/commerce-atlas/pkg/models/api"
	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"github.com/de-tools/commerce-atlas/pkg/runtime/charts"
	"github.com/de-tools/commerce-atlas/pkg/services/dashboard"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const (
	CodeInvalidPeriod  = "invalid_period"
	CodeUnknownSummary = "unknown_summary"
	CodeEmptyRange     = "empty_range"
	CodeInternal       = "internal_error"
)

type Handler struct {
	service  dashboard.Service
	renderer charts.Renderer
}

func NewHandler(service dashboard.Service, renderer charts.Renderer) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
	}
}

func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.service.ResolvePeriod("", "")
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, CodeInternal, err)
		return
	}
	writeJSON(w, r, adapters.MapPeriodDomainToApi(period))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	d, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, adapters.MapDashboardDomainToApi(d))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	name, ok := domain.ParseSummaryName(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, r, http.StatusNotFound, CodeUnknownSummary, errors.New("unknown summary "+chi.URLParam(r, "name")))
		return
	}

	d, ok := h.build(w, r)
	if !ok {
		return
	}

	var response interface{}
	switch name {
	case domain.SummaryDailyOrders:
		response = adapters.MapDailyOrdersDomainToApi(d.DailyOrders)
	case domain.SummaryCustomerStates:
		response = adapters.MapStateCountsDomainToApi(d.CustomerStates)
	case domain.SummarySellerStates:
		response = adapters.MapStateCountsDomainToApi(d.SellerStates)
	case domain.SummaryPaymentCounts:
		response = adapters.MapPaymentCountsDomainToApi(d.PaymentCounts)
	case domain.SummaryPaymentRevenue:
		response = adapters.MapPaymentRevenueDomainToApi(d.PaymentRevenue)
	case domain.SummaryCancellations:
		response = adapters.MapCancellationsDomainToApi(d.Cancellations)
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	name, ok := domain.ParseSummaryName(chi.URLParam(r, "name"))
	if !ok {
		writeError(w, r, http.StatusNotFound, CodeUnknownSummary, errors.New("unknown chart "+chi.URLParam(r, "name")))
		return
	}

	d, ok := h.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, name, d); err != nil {
		if errors.Is(err, domain.ErrEmptyRange) {
			writeError(w, r, http.StatusNotFound, CodeEmptyRange, err)
			return
		}
		writeError(w, r, http.StatusInternalServerError, CodeInternal, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("chart", string(name)).Msg("failed to write chart")
	}
}

// build resolves the start/end query parameters and builds the dashboard,
// answering 400 itself when they are not dates.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) (*domain.Dashboard, bool) {
	query := r.URL.Query()
	period, err := h.service.ResolvePeriod(query.Get("start"), query.Get("end"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, CodeInvalidPeriod, err)
		return nil, false
	}
	return h.service.Build(r.Context(), period), true
}

func writeJSON(w http.ResponseWriter, r *http.Request, response interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code string, err error) {
	logger := zerolog.Ctx(r.Context())
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("request failed")
	} else {
		logger.Debug().Err(err).Str("code", code).Msg("request rejected")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(api.Error{Code: code, Message: err.Error()}); encErr != nil {
		logger.Error().Err(encErr).Msg("failed to encode error response")
	}
}
