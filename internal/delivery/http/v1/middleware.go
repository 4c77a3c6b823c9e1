package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-tracker/internal/storage/postgres"
)

const (
	requestIDHeader = "X-Request-ID"

	// Client ids outside this rule are replaced with a generated one.
	requestIDRule = "max=128,printascii"

	requestIDCtxKey = "request_id"
	connScopeCtxKey = "conn_scope"
	connCtxKey      = "conn"
)

var validate = validator.New()

func (h *handlerImpl) HandleRequestID(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID != "" {
		err := validate.Var(requestID, requestIDRule)
		if err != nil {
			h.logger.Warn().
				Err(err).
				Int("length", len(requestID)).
				Msg("discarded client request id")
			requestID = ""
		}
	}

	if requestID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			abort(c, newStatusTextError(http.StatusInternalServerError))
			return
		}
		requestID = id.String()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

// HandleAccessLog logs every request once it is done. A panic
// is logged as a 500 and handed on to the recovery middleware.
func (h *handlerImpl) HandleAccessLog(c *gin.Context) {
	start := time.Now()
	defer func() {
		status := c.Writer.Status()
		recovered := recover()
		if recovered != nil {
			status = http.StatusInternalServerError
		}

		logger := h.requestLogger(c)
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Bool("panic", recovered != nil).
			Msg("handled request")

		if recovered != nil {
			panic(recovered)
		}
	}()

	c.Next()
}

// HandleConnScope lets the handlers below it acquire one
// storage handle on demand. The handle, if any, is released
// however the chain exits, including a panic recovered
// further up.
func (h *handlerImpl) HandleConnScope(c *gin.Context) {
	c.Set(connScopeCtxKey, true)
	defer func() {
		value, exists := c.Get(connCtxKey)
		if !exists {
			return
		}
		if conn, ok := value.(postgres.Handle); ok {
			conn.Release()
			logger := h.requestLogger(c)
			logger.Trace().Msg("released connection")
		}
	}()

	c.Next()
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	conn, ok := h.conn(c)
	if !ok {
		return
	}

	err := conn.Ping(c.Request.Context())
	if err != nil {
		logger := h.requestLogger(c)
		logger.Error().
			Err(err).
			Msg("failed to ping postgres")
		abort(c, newStatusTextError(http.StatusServiceUnavailable))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// conn returns the request's handle, acquiring it on first
// use. It aborts with 503 when the pool can't provide one and
// with 500 outside HandleConnScope.
func (h *handlerImpl) conn(c *gin.Context) (postgres.Handle, bool) {
	logger := h.requestLogger(c)

	if value, exists := c.Get(connCtxKey); exists {
		if conn, ok := value.(postgres.Handle); ok {
			return conn, true
		}
	}

	if !c.GetBool(connScopeCtxKey) {
		logger.Error().Msg("no connection scope in context")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return nil, false
	}

	conn, err := h.conns.Acquire(c.Request.Context())
	if err != nil {
		logger.Error().
			Err(err).
			Msg("failed to acquire connection")
		abort(c, newStatusTextError(http.StatusServiceUnavailable))
		return nil, false
	}
	logger.Trace().Msg("acquired connection")

	c.Set(connCtxKey, conn)
	return conn, true
}

func (h *handlerImpl) requestLogger(c *gin.Context) zerolog.Logger {
	requestID := c.GetString(requestIDCtxKey)
	if requestID == "" {
		return h.logger
	}
	return h.logger.With().
		Str("request_id", requestID).
		Logger()
}
