package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"uptask/internal/auth"
	"uptask/internal/core"
)

// TaskHandlers serves task CRUD and completion toggling.
type TaskHandlers struct {
	Tasks *core.TaskService
}

type taskRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Priority    string    `json:"priority"`
	Project     string    `json:"project"`
}

func (h *TaskHandlers) Create(c *gin.Context) {
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid payload")
		return
	}
	projectID, err := primitive.ObjectIDFromHex(req.Project)
	if err != nil {
		abortBadRequest(c, "invalid project id")
		return
	}
	task, err := h.Tasks.Create(c.Request.Context(), auth.CurrentUser(c), core.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Project:     projectID,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandlers) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.Tasks.Get(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandlers) Edit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req taskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, "invalid payload")
		return
	}
	task, err := h.Tasks.Edit(c.Request.Context(), auth.CurrentUser(c), id, core.TaskInput{
		Name:        req.Name,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Tasks.Delete(c.Request.Context(), auth.CurrentUser(c), id); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "task deleted"})
}

func (h *TaskHandlers) Toggle(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.Tasks.Toggle(c.Request.Context(), auth.CurrentUser(c), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
