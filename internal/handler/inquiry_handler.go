package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/models"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/service"
	"github.com/chamikaisuru/SINATHTRAVEL-sub000/internal/utils"
)

// InquiryHandler handles the public contact form and admin inquiry triage.
type InquiryHandler struct {
	inquiryService *service.InquiryService
}

// NewInquiryHandler constructs an InquiryHandler.
func NewInquiryHandler(inquiryService *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{inquiryService: inquiryService}
}

// Create handles the public POST /api/inquiries. Validation failures return
// 400 and persist nothing.
func (h *InquiryHandler) Create(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Phone   string `json:"phone"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "Name, a valid email and a message are required")
		return
	}

	inq := &models.Inquiry{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	emailSent, err := h.inquiryService.Submit(c.Request.Context(), inq)
	if err != nil {
		log.Error().Err(err).Msg("Failed to save inquiry")
		utils.Error(c, 500, "Failed to submit inquiry")
		return
	}

	utils.Success(c, 201, "Inquiry submitted", gin.H{
		"id":         inq.ID,
		"message":    "Thank you for your inquiry. We will get back to you soon.",
		"email_sent": emailSent,
	})
}

// List handles GET /api/admin/inquiries. With an id query it returns a single
// inquiry, otherwise a filtered listing with pagination and status counts.
func (h *InquiryHandler) List(c *gin.Context) {
	if raw := c.Query("id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.Error(c, 400, "Invalid inquiry id")
			return
		}
		inq, err := h.inquiryService.Get(c.Request.Context(), id)
		if err != nil {
			h.fail(c, err, "Failed to retrieve inquiry")
			return
		}
		utils.Success(c, 200, "Inquiry retrieved", inq)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	result, err := h.inquiryService.List(c.Request.Context(), c.Query("status"), c.Query("search"), limit, offset)
	if err != nil {
		h.fail(c, err, "Failed to retrieve inquiries")
		return
	}
	utils.Success(c, 200, "Inquiries retrieved", result)
}

// UpdateStatus handles PUT /api/admin/inquiries with {id, status}.
func (h *InquiryHandler) UpdateStatus(c *gin.Context) {
	var req struct {
		ID     int    `json:"id" form:"id"`
		Status string `json:"status" form:"status"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	if err := h.inquiryService.UpdateStatus(c.Request.Context(), req.ID, req.Status); err != nil {
		h.fail(c, err, "Failed to update inquiry")
		return
	}
	utils.Success(c, 200, "Inquiry updated", nil)
}

// Delete handles DELETE /api/admin/inquiries with {id}.
func (h *InquiryHandler) Delete(c *gin.Context) {
	var req struct {
		ID int `json:"id" form:"id"`
	}
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, 400, "Invalid request body")
		return
	}

	if err := h.inquiryService.Delete(c.Request.Context(), req.ID); err != nil {
		h.fail(c, err, "Failed to delete inquiry")
		return
	}
	utils.Success(c, 200, "Inquiry deleted", nil)
}

func (h *InquiryHandler) fail(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.Error(c, 404, "Inquiry not found")
	case errors.Is(err, utils.ErrInvalidInput):
		utils.Error(c, 400, err.Error())
	default:
		log.Error().Err(err).Msg(generic)
		utils.Error(c, 500, generic)
	}
}
