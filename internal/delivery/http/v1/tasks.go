package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/task-tracker/internal/models"
	"github.com/adanyl0v/task-tracker/internal/services"
)

type getTaskResponse struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Assignee    string        `json:"assignee"`
	Status      models.Status `json:"status"`
}

func newGetTaskResponse(task *models.Task) getTaskResponse {
	return getTaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Assignee:    task.Assignee,
		Status:      task.Status,
	}
}

type deleteTaskResponse struct {
	Message string `json:"message"`
}

type taskIDQuery struct {
	ID int64 `form:"id"`
}

// Pointers distinguish a missing field from an empty string.
type createTaskRequest struct {
	Title       *string `json:"title" binding:"required"`
	Description *string `json:"description" binding:"required"`
	Assignee    *string `json:"assignee" binding:"required"`
}

type updateTaskRequest struct {
	Status *models.Status `json:"status,omitempty"`
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := h.bindTaskID(c)
	if !ok {
		return
	}

	conn, ok := h.conn(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c.Request.Context(), conn, taskID)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	logger.Debug().
		Int64("task_id", task.ID).
		Msg("fetched task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error(), err))
		return
	}

	conn, ok := h.conn(c)
	if !ok {
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), conn, services.CreateTaskParams{
		Title:       *req.Title,
		Description: *req.Description,
		Assignee:    *req.Assignee,
	})
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	logger.Debug().
		Int64("task_id", task.ID).
		Msg("created task")
	c.JSON(http.StatusCreated, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := h.bindTaskID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to bind json")
		abort(c, newValidationError(errInvalidRequestBody.Error(), err))
		return
	}

	conn, ok := h.conn(c)
	if !ok {
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), conn, services.UpdateTaskParams{
		ID:     taskID,
		Status: req.Status,
	})
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	logger.Debug().
		Int64("task_id", task.ID).
		Msg("updated task")
	c.JSON(http.StatusOK, newGetTaskResponse(task))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	logger := h.requestLogger(c)

	taskID, ok := h.bindTaskID(c)
	if !ok {
		return
	}

	conn, ok := h.conn(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c.Request.Context(), conn, taskID)
	if err != nil {
		h.abortWithServiceError(c, err)
		return
	}

	logger.Debug().
		Int64("task_id", taskID).
		Msg("deleted task")
	c.JSON(http.StatusOK, deleteTaskResponse{
		Message: fmt.Sprintf("Task with ID %d has been deleted successfully", taskID),
	})
}

// bindTaskID rejects a missing or empty id, which gin would
// otherwise bind as 0.
func (h *handlerImpl) bindTaskID(c *gin.Context) (int64, bool) {
	logger := h.requestLogger(c)

	if c.Query("id") == "" {
		logger.Error().Msg("missing task id")
		apiErr := newUnprocessableEntityError(errInvalidTaskID.Error())
		apiErr.Fields = map[string]string{"id": "required"}
		abort(c, apiErr)
		return 0, false
	}

	var query taskIDQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		logger.Error().
			Err(err).
			Str("id", c.Query("id")).
			Msg("failed to bind task id")
		abort(c, newValidationError(errInvalidTaskID.Error(), err))
		return 0, false
	}
	return query.ID, true
}

func (h *handlerImpl) abortWithServiceError(c *gin.Context, err error) {
	logger := h.requestLogger(c)
	logger.Error().
		Err(err).
		Msg("task service failed")

	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(errTaskNotFound.Error()))
	case errors.Is(err, services.ErrInvalidTaskStatus),
		errors.Is(err, services.ErrInvalidTask):
		abort(c, newUnprocessableEntityError(err.Error()))
	default:
		abort(c, newStatusTextError(http.StatusInternalServerError))
	}
}
