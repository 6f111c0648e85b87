package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/estate-listings/internal/audit"
	"github.com/BruksfildServices01/estate-listings/internal/httperr"
	"github.com/BruksfildServices01/estate-listings/internal/logger"
	"github.com/BruksfildServices01/estate-listings/internal/models"
	"github.com/BruksfildServices01/estate-listings/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type auditLister interface {
	List(ctx context.Context, q audit.Query) ([]models.AuditLog, int64, error)
}

type AuditLogsHandler struct {
	logs auditLister
	loc  *time.Location
}

// NewAuditLogsHandler reads the from/to days in loc.
func NewAuditLogsHandler(logs auditLister, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	q := audit.Query{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	// --------------------------------------------------
	// Dates are whole days; "to" is inclusive
	// --------------------------------------------------

	if v := c.Query("from"); v != "" {
		if from, err := timezone.DayStart(v, h.loc); err == nil {
			q.From = from
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := timezone.DayEnd(v, h.loc); err == nil {
			q.To = to
		}
	}

	logs, total, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error().Err(err).Msg("list audit logs failed")
		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":  q.Page,
		"limit": q.Limit,
		"total": total,
		"logs":  logs,
	})
}
