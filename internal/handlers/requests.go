package handlers

import (
	"net/http"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

// Item request (wish list) handlers

// CreateItemRequest - POST /requests
// Создать запрос на вещь
func (h *Handlers) CreateItemRequest(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	var req models.CreateItemRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Requests.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// ListOwnItemRequests - GET /requests
// Собственные запросы с ответами
func (h *Handlers) ListOwnItemRequests(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	response, err := h.services.Requests.GetOwn(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListAllItemRequests - GET /requests/all?from=&size=
// Запросы других пользователей
func (h *Handlers) ListAllItemRequests(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	page, ok := h.pageParams(c)
	if !ok {
		return
	}

	response, err := h.services.Requests.GetAllOthers(c.Request.Context(), userID, page)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetItemRequest - GET /requests/:requestId
func (h *Handlers) GetItemRequest(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	requestID, ok := h.pathID(c, "requestId")
	if !ok {
		return
	}

	response, err := h.services.Requests.Get(c.Request.Context(), userID, requestID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
