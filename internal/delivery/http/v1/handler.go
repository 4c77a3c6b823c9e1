package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-tracker/internal/services"
	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

type Handler interface {
	HandleRequestID(c *gin.Context)
	HandleAccessLog(c *gin.Context)
	HandleConnScope(c *gin.Context)

	HandleHealth(c *gin.Context)

	HandleGetTask(c *gin.Context)
	HandleCreateTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	conns  postgres.Acquirer
	tasks  services.TaskService
}

func New(
	logger zerolog.Logger,
	conns postgres.Acquirer,
	taskService services.TaskService,
) Handler {
	return &handlerImpl{
		logger: logger,
		conns:  conns,
		tasks:  taskService,
	}
}

// RegisterRoutes mounts the task resource. The task id is
// passed as the "id" query parameter. Handlers validate input
// before they take a storage handle.
func RegisterRoutes(router gin.IRouter, h Handler) {
	router.Use(h.HandleRequestID, h.HandleAccessLog)

	router.GET("/health", h.HandleConnScope, h.HandleHealth)

	taskRouter := router.Group("/task", h.HandleConnScope)
	taskRouter.GET("/", h.HandleGetTask)
	taskRouter.POST("/", h.HandleCreateTask)
	taskRouter.PATCH("/", h.HandleUpdateTask)
	taskRouter.DELETE("/", h.HandleDeleteTask)
}
