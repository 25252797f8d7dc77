package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/benj-n/miguafi/internal/middleware"
	"github.com/benj-n/miguafi/internal/model"
	"github.com/benj-n/miguafi/internal/service"
	"github.com/gin-gonic/gin"
)

// AvailabilityHandler handles the offer/request ledger endpoints
type AvailabilityHandler struct {
	availService *service.AvailabilityService
}

func NewAvailabilityHandler(availService *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availService: availService}
}

// CreateOffer godoc
// @Summary Create an availability offer
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SlotRequest true "Offer window"
// @Success 201 {object} model.CreatedResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /availability/offers [post]
func (h *AvailabilityHandler) CreateOffer(c *gin.Context) {
	h.createSlot(c, h.availService.CreateOffer)
}

// CreateRequest godoc
// @Summary Create an availability request
// @Tags Availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.SlotRequest true "Request window"
// @Success 201 {object} model.CreatedResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /availability/requests [post]
func (h *AvailabilityHandler) CreateRequest(c *gin.Context) {
	h.createSlot(c, h.availService.CreateRequest)
}

func (h *AvailabilityHandler) createSlot(c *gin.Context, create func(string, model.SlotRequest) (int, error)) {
	var req model.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	id, err := create(user.ID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRange),
			errors.Is(err, service.ErrNotInFuture),
			errors.Is(err, service.ErrOverlappingOffer),
			errors.Is(err, service.ErrOverlappingRequest):
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to create slot"})
		}
		return
	}

	c.JSON(http.StatusCreated, model.CreatedResponse{ID: id})
}

// DeleteOffer godoc
// @Summary Delete one of the caller's offers
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /availability/offers/{id} [delete]
func (h *AvailabilityHandler) DeleteOffer(c *gin.Context) {
	h.deleteSlot(c, h.availService.DeleteOffer, "Offer not found")
}

// DeleteRequest godoc
// @Summary Delete one of the caller's requests
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 204
// @Failure 404 {object} model.ErrorResponse
// @Router /availability/requests/{id} [delete]
func (h *AvailabilityHandler) DeleteRequest(c *gin.Context) {
	h.deleteSlot(c, h.availService.DeleteRequest, "Request not found")
}

func (h *AvailabilityHandler) deleteSlot(c *gin.Context, del func(string, int) error, notFound string) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		// Ownership is concealed; a bad ID reads the same as a missing one.
		c.JSON(http.StatusNotFound, model.ErrorResponse{Error: notFound})
		return
	}

	user := middleware.CurrentUser(c)
	if err := del(user.ID, id); err != nil {
		if errors.Is(err, service.ErrSlotNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: notFound})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to delete slot"})
		return
	}

	c.Status(http.StatusNoContent)
}

// MyOffers godoc
// @Summary List the caller's offers, paginated
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-indexed page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param sort query string false "Sort key; leading '-' means descending" default(-start_at)
// @Success 200 {object} model.SlotListResponse
// @Router /availability/offers/mine [get]
func (h *AvailabilityHandler) MyOffers(c *gin.Context) {
	h.listSlots(c, h.availService.ListOffers)
}

// MyRequests godoc
// @Summary List the caller's requests, paginated
// @Tags Availability
// @Produce json
// @Security BearerAuth
// @Param page query int false "1-indexed page" default(1)
// @Param page_size query int false "Page size" default(20)
// @Param sort query string false "Sort key; leading '-' means descending" default(-start_at)
// @Success 200 {object} model.SlotListResponse
// @Router /availability/requests/mine [get]
func (h *AvailabilityHandler) MyRequests(c *gin.Context) {
	h.listSlots(c, h.availService.ListRequests)
}

func (h *AvailabilityHandler) listSlots(c *gin.Context, list func(string, model.SlotListRequest) (*model.SlotListResponse, error)) {
	var q model.SlotListRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid query", Message: err.Error()})
		return
	}

	user := middleware.CurrentUser(c)
	resp, err := list(user.ID, q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "Failed to list slots"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
