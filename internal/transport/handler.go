package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"go-lens-solver/internal/config"
	apperrors "go-lens-solver/internal/errors"
	"go-lens-solver/internal/logger"
	"go-lens-solver/internal/service"
	"go-lens-solver/pkg/models"
)

// NewHandler builds the HTTP surface of the solver. It is a thin
// marshalling layer: requests are decoded into solve calls and results
// encoded back, with no solver logic of its own.
func NewHandler(svc service.SolveService, cfg *config.Config) http.Handler {
	r := gin.Default()

	// Add middleware
	r.Use(
		requestSizeLimiter(cfg.MaxRequestBodySize),
		errorHandler(),
	)

	// Configure routes
	r.GET("/health", healthCheck)
	r.GET("/models", listModels(svc))
	r.POST("/solve", solveSource(svc, cfg))
	r.POST("/solve/batch", solveBatch(svc, cfg))

	return r
}

func solveSource(svc service.SolveService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.SolveTimeout)
		defer cancel()

		logger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"ip":     c.ClientIP(),
		}).Info("Processing solve request")

		var req models.SolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		if !req.Source.IsFinite() {
			err := apperrors.NewValidationError("source coordinates must be finite", nil)
			respondError(c, err.StatusCode, "invalid source position", err)
			return
		}

		resp, err := svc.Solve(ctx, req)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"model": req.Model,
				"ip":    c.ClientIP(),
			}).Error("Solve request failed")
			respondError(c, apperrors.GetStatusCode(err), "solve failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id":          resp.RequestID,
			"model":               req.Model,
			"image_count":         resp.Result.ImageCount,
			"incomplete":          resp.Result.Incomplete,
			"processing_time_sec": resp.ProcessingTimeSec,
		}).Info("Solve request completed")

		c.JSON(http.StatusOK, resp)
	}
}

func solveBatch(svc service.SolveService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		var req models.SolveBatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"ip": c.ClientIP(),
			}).Error("Invalid batch request format")
			respondError(c, http.StatusBadRequest, "invalid request format", err)
			return
		}
		for _, src := range req.Sources {
			if !src.IsFinite() {
				err := apperrors.NewValidationError("source coordinates must be finite", nil)
				respondError(c, err.StatusCode, "invalid source position", err)
				return
			}
		}

		resp, err := svc.SolveBatch(ctx, req)
		if err != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"model":        req.Model,
				"source_count": len(req.Sources),
				"ip":           c.ClientIP(),
			}).Error("Batch solve request failed")
			respondError(c, apperrors.GetStatusCode(err), "batch solve failed", err)
			return
		}

		logger.WithFields(logrus.Fields{
			"request_id":          resp.RequestID,
			"model":               req.Model,
			"source_count":        resp.SourceCount,
			"processing_time_sec": resp.ProcessingTimeSec,
		}).Info("Batch solve request completed")

		c.JSON(http.StatusOK, resp)
	}
}

func listModels(svc service.SolveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"models": svc.Models()})
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "available",
		"version": "1.0.0",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

func errorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			respondError(c, determineStatusCode(err), "request processing failed", err)
		}
	}
}

func determineStatusCode(err error) int {
	// Check if it's a custom app error first
	if appErr, ok := err.(*apperrors.AppError); ok {
		return appErr.StatusCode
	}

	// Fallback to context-based errors
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, code int, message string, err error) {
	// Log the error with context
	logger.WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: fmt.Sprintf("%s: %v", message, err),
	})
}
