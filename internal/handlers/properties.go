package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"homefind/api/internal/models"
	"homefind/api/internal/service"
)

type createPropertyRequest struct {
	Title        string   `json:"title" binding:"required"`
	Description  string   `json:"description"`
	PriceETB     int64    `json:"priceEtb" binding:"required"`
	PriceUSD     *int64   `json:"priceUsd"`
	Category     string   `json:"category" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Location     string   `json:"location" binding:"required"`
	Bedrooms     *int     `json:"bedrooms"`
	Bathrooms    *int     `json:"bathrooms"`
	SizeSqm      *float64 `json:"sizeSqm"`
	Images       []string `json:"images"`
	Amenities    []string `json:"amenities"`
	DurationDays int      `json:"durationDays"`
}

func (h HandlerSet) CreateProperty(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.listings.CreateProperty(c.Request.Context(), caller, service.CreatePropertyInput{
		Title:        req.Title,
		Description:  req.Description,
		PriceETB:     req.PriceETB,
		PriceUSD:     req.PriceUSD,
		Category:     models.PropertyCategory(req.Category),
		Type:         models.TransactionType(req.Type),
		Location:     req.Location,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		SizeSqm:      req.SizeSqm,
		Images:       req.Images,
		Amenities:    req.Amenities,
		DurationDays: req.DurationDays,
	}, time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, propertyResponse(property))
}

func pageParams(c *gin.Context) (limit, offset int) {
	limit = 50
	if perPage := c.Query("perPage"); perPage != "" {
		if v, err := strconv.Atoi(perPage); err == nil && v > 0 && v <= 200 {
			limit = v
		}
	}
	if page := c.Query("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 1 {
			offset = (v - 1) * limit
		}
	}
	return limit, offset
}

func (h HandlerSet) ListProperties(c *gin.Context) {
	limit, offset := pageParams(c)

	var category, txType *string
	if v := c.Query("category"); v != "" {
		category = &v
	}
	if v := c.Query("type"); v != "" {
		txType = &v
	}

	properties, err := h.listings.ListActive(c.Request.Context(), category, txType, limit, offset)
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

func (h HandlerSet) GetProperty(c *gin.Context) {
	var caller *models.Caller
	if resolved, ok := currentCaller(c); ok {
		caller = &resolved
	}

	property, err := h.listings.GetProperty(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, propertyResponse(property))
}

func (h HandlerSet) MyProperties(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	properties, err := h.listings.ListOwned(c.Request.Context(), caller)
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

func (h HandlerSet) DeleteProperty(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.listings.DeleteProperty(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "property deleted"})
}

type renewRequest struct {
	DurationDays int `json:"durationDays"`
}

func (h HandlerSet) RenewProperty(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req renewRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, err := h.listings.Renew(c.Request.Context(), caller, c.Param("id"), req.DurationDays, time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, propertyResponse(property))
}

func propertyResponse(p models.Property) gin.H {
	return gin.H{
		"id":           p.ID,
		"ownerId":      p.OwnerID,
		"title":        p.Title,
		"description":  p.Description,
		"priceEtb":     p.PriceETB,
		"priceUsd":     p.PriceUSD,
		"category":     p.Category,
		"type":         p.Type,
		"location":     p.Location,
		"bedrooms":     p.Bedrooms,
		"bathrooms":    p.Bathrooms,
		"sizeSqm":      p.SizeSqm,
		"images":       p.Images,
		"amenities":    p.Amenities,
		"isActive":     p.IsActive,
		"durationDays": p.DurationDays,
		"expiresAt":    p.ExpiresAt,
		"createdAt":    p.CreatedAt,
	}
}
