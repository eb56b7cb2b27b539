// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"wanderlust/internal/modules/plan"
	"wanderlust/internal/service"
)

const (
	msgPromptRequired   = "Prompt is required"
	msgNotTravel        = "Please provide a travel-related prompt"
	msgGenerationFailed = "An error occurred while generating the travel plan."
	msgFetchFailed      = "Failed to fetch travel plans"
	msgPlanNotFound     = "Travel plan not found"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type listResponse struct {
	Success bool        `json:"success"`
	Plans   []plan.Plan `json:"plans"`
	Count   int         `json:"count"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeList(c *gin.Context, plans []plan.Plan) {
	if plans == nil {
		plans = []plan.Plan{}
	}
	writeJSON(c, http.StatusOK, listResponse{Success: true, Plans: plans, Count: len(plans)})
}

// writeGenerateError maps pipeline errors; anything that is not an input error is a 500 with details.
func writeGenerateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPromptRequired):
		writeError(c, http.StatusBadRequest, msgPromptRequired)
	case errors.Is(err, service.ErrNotTravelRelated):
		writeError(c, http.StatusBadRequest, msgNotTravel)
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeJSON(c, http.StatusInternalServerError, errorResponse{Error: msgGenerationFailed, Details: err.Error()})
	}
}

func writePlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, plan.ErrNotFound):
		writeError(c, http.StatusNotFound, msgPlanNotFound)
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

// queryInt parses an optional integer query parameter. Missing or blank values yield 0.
func queryInt(c *gin.Context, key string) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

// queryLimit is lenient: an unparseable limit falls back to the endpoint default.
func queryLimit(c *gin.Context) int {
	n, err := queryInt(c, "limit")
	if err != nil {
		return 0
	}
	return n
}
