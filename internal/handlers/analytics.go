package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homefind/api/internal/apperr"
	"homefind/api/internal/service"
)

type trackViewRequest struct {
	PropertyID string  `json:"propertyId" binding:"required"`
	VisitorID  *string `json:"visitorId"`
	UserID     *string `json:"userId"`
}

// TrackView ingests one impression. View counting is best-effort telemetry:
// a storage failure is logged and answered 202 so the visitor's page never
// breaks on it. Only an unknown property is surfaced, as 404.
func (h HandlerSet) TrackView(c *gin.Context) {
	var req trackViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := c.ClientIP()
	userAgent := c.GetHeader("User-Agent")
	input := service.RecordViewInput{
		PropertyID: req.PropertyID,
		VisitorID:  req.VisitorID,
		UserID:     req.UserID,
	}
	if ip != "" {
		input.IPAddress = &ip
	}
	if userAgent != "" {
		input.UserAgent = &userAgent
	}

	viewID, err := h.analytics.RecordView(c.Request.Context(), input, time.Now())
	switch {
	case err == nil && viewID != "":
		c.JSON(http.StatusCreated, gin.H{"success": true, "viewId": viewID})
	case err == nil:
		// suppressed by the dedup window
		c.JSON(http.StatusAccepted, gin.H{"success": true})
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrValidation):
		respondError(c, h.log, err)
	default:
		h.log.Error().Err(err).Str("property_id", req.PropertyID).Msg("view ingest failed")
		c.JSON(http.StatusAccepted, gin.H{"success": true})
	}
}

// AnalyticsOverview bundles the dashboard counters, the top listings and the
// recent activity feed into one response.
func (h HandlerSet) AnalyticsOverview(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	overview, err := h.analytics.Overview(ctx, caller, now)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	top, err := h.analytics.TopProperties(ctx, caller, 0)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	recent, err := h.analytics.RecentActivity(ctx, caller, 0)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview":      overview,
		"topProperties": top,
		"recentViews":   recent,
	})
}

func (h HandlerSet) PropertyAnalytics(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	series, err := h.analytics.PropertyTimeSeries(c.Request.Context(), caller, c.Param("id"), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, series)
}
