// README: Plan handlers for generation, search, listings, detail and share.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wanderlust/internal/modules/plan"
	"wanderlust/internal/service"
)

// Generator is satisfied by *service.Pipeline.
type Generator interface {
	Generate(ctx context.Context, req service.GenerateRequest) (*service.Result, error)
}

// PlanCatalog is satisfied by *service.Catalog.
type PlanCatalog interface {
	Search(ctx context.Context, f plan.SearchFilter) ([]plan.Plan, error)
	Recent(ctx context.Context, limit int) ([]plan.Plan, error)
	Featured(ctx context.Context, limit int) ([]plan.Plan, error)
	Popular(ctx context.Context, limit int) ([]plan.Plan, error)
	View(ctx context.Context, slug string) (*plan.Plan, error)
	Share(ctx context.Context, slug string) (int, error)
}

type PlanHandler struct {
	generator Generator
	catalog   PlanCatalog
	timeout   time.Duration
	logger    *zap.Logger
}

func NewPlanHandler(generator Generator, catalog PlanCatalog, timeout time.Duration, logger *zap.Logger) *PlanHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanHandler{generator: generator, catalog: catalog, timeout: timeout, logger: logger.Named("plans")}
}

type generateReq struct {
	Prompt      string   `json:"prompt"`
	Preferences []string `json:"preferences"`
	Interests   []string `json:"interests"`
}

type generateResp struct {
	Success bool       `json:"success"`
	Plan    *plan.Plan `json:"plan"`
	Message string     `json:"message"`
}

// Generate handles POST /api/generate-travel.
func (h *PlanHandler) Generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, msgPromptRequired)
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	res, err := h.generator.Generate(ctx, service.GenerateRequest{
		Prompt:      req.Prompt,
		Preferences: req.Preferences,
		Interests:   req.Interests,
	})
	if err != nil {
		if !errors.Is(err, service.ErrInvalidInput) {
			h.logger.Error("generate travel plan", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
		}
		writeGenerateError(c, err)
		return
	}

	msg := "Travel plan generated successfully"
	if res.Existing {
		msg = "Found existing travel plan"
	}
	writeJSON(c, http.StatusOK, generateResp{Success: true, Plan: res.Plan, Message: msg})
}

// Search handles GET /api/generate-travel?destination=&days=&limit=.
func (h *PlanHandler) Search(c *gin.Context) {
	days, err := queryInt(c, "days")
	if err != nil {
		writeError(c, http.StatusBadRequest, "days must be an integer")
		return
	}
	plans, err := h.catalog.Search(c.Request.Context(), plan.SearchFilter{
		Destination: c.Query("destination"),
		Days:        days,
		Limit:       queryLimit(c),
	})
	if err != nil {
		h.logger.Error("search plans", zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeList(c, plans)
}

// Recent handles GET /api/plans/recent.
func (h *PlanHandler) Recent(c *gin.Context) {
	h.list(c, "recent", h.catalog.Recent)
}

// Featured handles GET /api/plans/featured.
func (h *PlanHandler) Featured(c *gin.Context) {
	h.list(c, "featured", h.catalog.Featured)
}

// Popular handles GET /api/plans/popular.
func (h *PlanHandler) Popular(c *gin.Context) {
	h.list(c, "popular", h.catalog.Popular)
}

func (h *PlanHandler) list(c *gin.Context, name string, fetch func(context.Context, int) ([]plan.Plan, error)) {
	plans, err := fetch(c.Request.Context(), queryLimit(c))
	if err != nil {
		h.logger.Error("list plans", zap.String("list", name), zap.Error(err))
		writeError(c, http.StatusInternalServerError, msgFetchFailed)
		return
	}
	writeList(c, plans)
}

// Get handles GET /api/plans/:slug.
func (h *PlanHandler) Get(c *gin.Context) {
	p, err := h.catalog.View(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, plan.ErrNotFound) {
			h.logger.Error("get plan", zap.String("slug", c.Param("slug")), zap.Error(err))
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "plan": p})
}

// Share handles POST /api/plans/:slug/share.
func (h *PlanHandler) Share(c *gin.Context) {
	shares, err := h.catalog.Share(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if !errors.Is(err, plan.ErrNotFound) {
			h.logger.Error("share plan", zap.String("slug", c.Param("slug")), zap.Error(err))
		}
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"success": true, "shares": shares})
}
