package handlers

import (
	"net/http"

	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

// Items handlers

// CreateItem - POST /items
// Создать вещь
func (h *Handlers) CreateItem(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Items.Create(c.Request.Context(), ownerID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// UpdateItem - PATCH /items/:itemId
// Частичное обновление вещи, только для владельца
func (h *Handlers) UpdateItem(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Items.Update(c.Request.Context(), itemID, userID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetItem - GET /items/:itemId
// Вещь с комментариями; для владельца дополнительно last/next бронирования
func (h *Handlers) GetItem(c *gin.Context) {
	callerID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	response, err := h.services.Items.Get(c.Request.Context(), itemID, callerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListItems - GET /items
// Вещи владельца
func (h *Handlers) ListItems(c *gin.Context) {
	ownerID, ok := h.userID(c)
	if !ok {
		return
	}

	response, err := h.services.Items.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchItems - GET /items/search?text=
// Поиск по названию и описанию
func (h *Handlers) SearchItems(c *gin.Context) {
	response, err := h.services.Items.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// AddComment - POST /items/:itemId/comment
// Оставить отзыв после завершённого бронирования
func (h *Handlers) AddComment(c *gin.Context) {
	authorID, ok := h.userID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "itemId")
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := h.services.Items.AddComment(c.Request.Context(), itemID, authorID, &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
