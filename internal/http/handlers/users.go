package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"tasks_api/internal/domain"
	"tasks_api/internal/repository"
	"tasks_api/internal/ws"

	"github.com/gin-gonic/gin"
)

type userRequest struct {
	Username string `json:"username" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

func userNotFound(c *gin.Context, id int64) {
	fail(c, http.StatusNotFound, CodeUserNotFound, fmt.Sprintf("User with id %d not found", id))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	user := &domain.User{Username: req.Username, Email: req.Email, Password: req.Password}
	if err := h.Users.Create(c.Request.Context(), user); err != nil {
		internalError(c, err)
		return
	}

	h.publish(ws.EventUserCreated, user.ID, user)
	success(c, http.StatusCreated, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			userNotFound(c, id)
			return
		}
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	user := &domain.User{ID: id, Username: req.Username, Email: req.Email, Password: req.Password}
	if err := h.Users.Update(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			userNotFound(c, id)
			return
		}
		internalError(c, err)
		return
	}

	h.publish(ws.EventUserUpdated, user.ID, user)
	success(c, http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.Users.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted {
		h.publish(ws.EventUserDeleted, id, nil)
	}
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: msgDeleted})
}
