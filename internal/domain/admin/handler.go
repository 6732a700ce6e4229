package admin

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/polltech/smarttutors/internal/domain/ledger"
	"github.com/polltech/smarttutors/internal/domain/payment"
	"github.com/polltech/smarttutors/internal/domain/settings"
	"github.com/polltech/smarttutors/internal/domain/uptime"
	"github.com/polltech/smarttutors/internal/domain/user"
	"github.com/polltech/smarttutors/internal/pkg/imaging"
	"github.com/polltech/smarttutors/internal/pkg/response"
	"github.com/polltech/smarttutors/internal/pkg/storage"
)

// Handler handles admin console HTTP requests
type Handler struct {
	service   *Service
	users     user.Repository
	ledgerSvc ledger.Service
	payments  *payment.Service
	settings  settings.Service
	uptime    uptime.Repository
	processor *imaging.Processor
	store     storage.Storage
}

// NewHandler creates admin handler
func NewHandler(
	service *Service,
	users user.Repository,
	ledgerSvc ledger.Service,
	payments *payment.Service,
	settingsSvc settings.Service,
	uptimeRepo uptime.Repository,
	processor *imaging.Processor,
	store storage.Storage,
) *Handler {
	return &Handler{
		service:   service,
		users:     users,
		ledgerSvc: ledgerSvc,
		payments:  payments,
		settings:  settingsSvc,
		uptime:    uptimeRepo,
		processor: processor,
		store:     store,
	}
}

// Dashboard handles GET /admin/dashboard
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var resp DashboardResponse
	var err error

	if resp.TotalUsers, err = h.users.Count(ctx, ""); err != nil {
		log.Error().Err(err).Msg("dashboard user count failed")
		response.InternalError(w)
		return
	}
	if h.service.counters.CountChats != nil {
		if resp.TotalChats, err = h.service.counters.CountChats(ctx); err != nil {
			log.Error().Err(err).Msg("dashboard chat count failed")
			response.InternalError(w)
			return
		}
	}
	if h.service.counters.CountImages != nil {
		if resp.TotalImages, err = h.service.counters.CountImages(ctx); err != nil {
			log.Error().Err(err).Msg("dashboard image count failed")
			response.InternalError(w)
			return
		}
	}

	response.OK(w, resp)
}

// UptimeStats handles GET /admin/uptime
func (h *Handler) UptimeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.uptime.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load uptime stats")
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
