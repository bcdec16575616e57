package handlers

import (
	"net/http"
	"strconv"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

// Bookings handlers

// CreateBooking - POST /bookings
// Создать бронирование
func (h *Handlers) CreateBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Bookings.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SetApproval - PATCH /bookings/:bookingId?approved={bool}
// Подтвердить или отклонить бронирование
func (h *Handlers) SetApproval(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "bookingId")
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "approved query parameter is required"})
		return
	}

	response, err := h.services.Bookings.SetApproval(c.Request.Context(), ownerID, bookingID, approved)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetBooking - GET /bookings/:bookingId
// Получить бронирование
func (h *Handlers) GetBooking(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	bookingID, ok := h.pathID(c, "bookingId")
	if !ok {
		return
	}

	response, err := h.services.Bookings.Get(c.Request.Context(), userID, bookingID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListBookingsByBooker - GET /bookings?state=&from=&size=
// Список бронирований пользователя
func (h *Handlers) ListBookingsByBooker(c *gin.Context) {
	bookerID, ok := h.userID(c)
	if !ok {
		return
	}
	page, ok := h.pageParams(c)
	if !ok {
		return
	}

	state := c.DefaultQuery("state", defaultState)

	response, err := h.services.Bookings.ListByBooker(c.Request.Context(), bookerID, state, page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListBookingsByOwner - GET /bookings/owner?state=&from=&size=
// Список бронирований вещей владельца
func (h *Handlers) ListBookingsByOwner(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		return
	}
	page, ok := h.pageParams(c)
	if !ok {
		return
	}

	state := c.DefaultQuery("state", defaultState)

	response, err := h.services.Bookings.ListByOwner(c.Request.Context(), ownerID, state, page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
