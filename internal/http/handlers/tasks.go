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

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required"`
}

type updateTaskRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Deadline    string `json:"deadline" binding:"required"`
	IsCompleted *bool  `json:"is_completed" binding:"required"`
}

func taskNotFound(c *gin.Context, id int64) {
	fail(c, http.StatusNotFound, CodeTaskNotFound, fmt.Sprintf("Task with id %d not found", id))
}

// CreateTask inserts a task. An unparseable deadline is reported like any
// other storage failure.
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	deadline, err := domain.ParseDeadline(req.Deadline)
	if err != nil {
		internalError(c, err)
		return
	}

	task := &domain.Task{Title: req.Title, Description: req.Description, Deadline: deadline}
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		internalError(c, err)
		return
	}

	h.publish(ws.EventTaskCreated, task.ID, task)
	success(c, http.StatusCreated, task)
}

func (h *Handler) ListTasks(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			taskNotFound(c, id)
			return
		}
		internalError(c, err)
		return
	}
	success(c, http.StatusOK, task)
}

// UpdateTask overwrites every mutable field of the task.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badBody(c, err)
		return
	}

	deadline, err := domain.ParseDeadline(req.Deadline)
	if err != nil {
		internalError(c, err)
		return
	}

	task := &domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    deadline,
		IsCompleted: *req.IsCompleted,
	}
	if err := h.Tasks.Update(c.Request.Context(), task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			taskNotFound(c, id)
			return
		}
		internalError(c, err)
		return
	}

	h.publish(ws.EventTaskUpdated, task.ID, task)
	success(c, http.StatusOK, task)
}

// DeleteTask answers success whether or not the task existed.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := h.Tasks.Delete(c.Request.Context(), id)
	if err != nil {
		internalError(c, err)
		return
	}
	if deleted {
		h.publish(ws.EventTaskDeleted, id, nil)
	}
	c.JSON(http.StatusOK, Envelope{Status: StatusSuccess, Message: msgDeleted})
}

// CompleteTask only accepts {"is_completed": true}; tasks are never reopened here.
func (h *Handler) CompleteTask(c *gin.Context) {
	var req struct {
		IsCompleted any `json:"is_completed"`
	}
	err := c.ShouldBindJSON(&req)
	if v, isBool := req.IsCompleted.(bool); err != nil || !isBool || !v {
		fail(c, http.StatusBadRequest, CodeInvalidIsCompleted, "Only true is allowed for is_completed")
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	task, err := h.Tasks.SetCompleted(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			taskNotFound(c, id)
			return
		}
		internalError(c, err)
		return
	}

	h.publish(ws.EventTaskCompleted, task.ID, task)
	success(c, http.StatusOK, task)
}
