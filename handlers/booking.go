package handlers

import (
	"errors"
	"net/http"
	"time"

	serviceRepo "comoencasa/database/repository/service"
	"comoencasa/services/booking"
	"comoencasa/services/scheduling"
	"comoencasa/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the public booking calendar and checkout endpoints.
type BookingHandler struct {
	Engine      scheduling.SchedulingEngine
	Checkout    booking.CheckoutService
	ServiceRepo serviceRepo.ServiceRepository
}

// NewBookingHandler constructs the booking handler.
func NewBookingHandler(engine scheduling.SchedulingEngine, checkout booking.CheckoutService, services serviceRepo.ServiceRepository) *BookingHandler {
	return &BookingHandler{Engine: engine, Checkout: checkout, ServiceRepo: services}
}

// GetOpenSlots returns the bookable start times for one calendar date.
// GET /api/booking/slots?date=2025-03-17
func (h *BookingHandler) GetOpenSlots(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected date=YYYY-MM-DD")
		return
	}

	slots, err := h.Engine.OpenSlots(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute open slots", err.Error())
		return
	}
	if slots == nil {
		slots = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetCandidateProviders returns the providers free to take a given slot.
// GET /api/booking/slots/:date/providers?time=10:00
func (h *BookingHandler) GetCandidateProviders(c *gin.Context) {
	date := c.Param("date")
	startTime := c.Query("time")
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}
	if _, err := time.Parse(utils.TimeLayout, startTime); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid time", "expected time=HH:MM")
		return
	}

	providers, err := h.Engine.CandidateProviders(c.Request.Context(), date, startTime)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list providers", err.Error())
		return
	}

	summaries := make([]any, 0, len(providers))
	for _, p := range providers {
		summaries = append(summaries, p.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "time": startTime, "providers": summaries})
}

// GetDayOccupancy returns a date's appointments grouped by start time,
// alongside the active therapist headcount the calendar needs to decide
// which slots are full.
// GET /api/booking/occupancy?date=2025-03-17
func (h *BookingHandler) GetDayOccupancy(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected date=YYYY-MM-DD")
		return
	}

	occupancy, err := h.Engine.DayOccupancy(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to compute occupancy", err.Error())
		return
	}
	c.JSON(http.StatusOK, occupancy)
}

// GetServices lists the purchasable services, cheapest first.
// GET /api/booking/services
func (h *BookingHandler) GetServices(c *gin.Context) {
	services, err := h.ServiceRepo.ListActive(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// CreateCheckout validates a booking intent and returns the hosted payment
// page URL.
// POST /api/booking/checkout
func (h *BookingHandler) CreateCheckout(c *gin.Context) {
	var input booking.CheckoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	url, err := h.Checkout.CreateCheckout(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, scheduling.ErrNoProviderAvailable) {
			utils.JSONError(c, http.StatusConflict, "slot no longer available", err.Error())
			return
		}
		if errors.Is(err, serviceRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "unknown service", err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create checkout", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
