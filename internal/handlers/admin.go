package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) AdminListUsers(c *gin.Context) {
	rows, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "temporarily_unavailable"})
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		items = append(items, gin.H{
			"id":            row.User.ID,
			"name":          row.User.Name,
			"email":         row.User.Email,
			"role":          row.User.Role,
			"isActive":      row.User.IsActive,
			"createdAt":     row.User.CreatedAt,
			"propertyCount": row.PropertyCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type setUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

func (h HandlerSet) AdminSetUserStatus(c *gin.Context) {
	var req setUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.users.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "isActive": *req.IsActive})
}

// AdminListProperties lists every property, expired inventory included, for
// the moderation view.
func (h HandlerSet) AdminListProperties(c *gin.Context) {
	limit, offset := pageParams(c)

	properties, err := h.listings.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]gin.H, 0, len(properties))
	for _, p := range properties {
		items = append(items, propertyResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// AdminExpireProperty force-expires a listing immediately, regardless of its
// scheduled expiry. Reactivation goes through the renew endpoint.
func (h HandlerSet) AdminExpireProperty(c *gin.Context) {
	if err := h.listings.ForceExpire(c.Request.Context(), c.Param("id"), time.Now()); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property expired"})
}

// AdminRunSweep triggers an expiration pass outside the schedule. Sweeps are
// idempotent, so running one at any moment is safe.
func (h HandlerSet) AdminRunSweep(c *gin.Context) {
	count, err := h.listings.Sweep(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"expired": count})
}
