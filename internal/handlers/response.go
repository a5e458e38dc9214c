package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/docflow_app/internal/apperrors"
	"github.com/SscSPs/docflow_app/internal/core/domain"
	"github.com/SscSPs/docflow_app/internal/dto"
	"github.com/SscSPs/docflow_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondOK writes data inside a successful envelope.
func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, dto.OK(message, data))
}

// respondError translates err into its HTTP status and an unsuccessful
// envelope. Internal failures are reported with fallback only so store
// details never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, dto.Fail(fallback))
		return
	}
	logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.Fail(errorMessage(err)))
}

func errorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// respondBindError reports a request body or query that could not be decoded.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
}

// callerIdentity returns the authenticated caller or aborts with 401.
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentityFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller identity not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return domain.Identity{}, false
	}
	return identity, true
}

// idParam parses a positive integer path parameter or aborts with 400.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("Invalid "+name+": a positive number is required"))
		return 0, false
	}
	return id, true
}
