package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"homefind/api/internal/models"
	"homefind/api/internal/repository"
	"homefind/api/internal/service"
)

type createLeadRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Phone      *string `json:"phone"`
	Message    *string `json:"message"`
	PropertyID *string `json:"propertyId"`
	SellerID   *string `json:"sellerId"`
}

// CreateLead accepts a public inquiry submission; no authentication required.
func (h HandlerSet) CreateLead(c *gin.Context) {
	var req createLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leads.CreateLead(c.Request.Context(), service.CreateLeadInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		PropertyID: req.PropertyID,
		SellerID:   req.SellerID,
	}, time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, leadResponse(lead, nil))
}

func (h HandlerSet) ListLeads(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	rows, err := h.leads.ListLeads(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	items := make([]gin.H, 0, len(rows))
	for _, row := range rows {
		items = append(items, leadResponse(row.Lead, &row))
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type updateLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h HandlerSet) UpdateLeadStatus(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	lead, err := h.leads.UpdateStatus(c.Request.Context(), caller, c.Param("id"), models.LeadStatus(req.Status), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, leadResponse(lead, nil))
}

func (h HandlerSet) DeleteLead(c *gin.Context) {
	caller, ok := currentCaller(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.leads.DeleteLead(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "lead deleted"})
}

func leadResponse(lead models.Lead, row *repository.LeadRow) gin.H {
	resp := gin.H{
		"id":         lead.ID,
		"name":       lead.Name,
		"email":      lead.Email,
		"phone":      lead.Phone,
		"message":    lead.Message,
		"propertyId": lead.PropertyID,
		"sellerId":   lead.SellerID,
		"status":     lead.Status,
		"createdAt":  lead.CreatedAt,
		"updatedAt":  lead.UpdatedAt,
	}
	if row != nil {
		resp["propertyTitle"] = row.PropertyTitle
		resp["propertyLocation"] = row.PropertyLocation
		resp["sellerName"] = row.SellerName
	}
	return resp
}
