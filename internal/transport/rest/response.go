package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carematch/internal/domain"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// conflictResponseBody отдаётся с кодом 409 и содержит данные назначения,
// из-за которого подбор интервала невозможен.
type conflictResponseBody struct {
	Status   string          `json:"status"`
	Message  string          `json:"message"`
	Conflict conflictDetails `json:"conflict"`
}

type conflictDetails struct {
	AssignmentID int64     `json:"assignment_id"`
	CareType     string    `json:"care_type"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := totalCount / pageSize
	if totalCount%pageSize > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

func notFoundResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusNotFound, message)
}

func internalServerErrorResponse(c *gin.Context) {
	errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

func conflictResponse(c *gin.Context, conflictErr *domain.SchedulingConflictError) {
	c.AbortWithStatusJSON(http.StatusConflict, conflictResponseBody{
		Status:  "error",
		Message: conflictErr.Error(),
		Conflict: conflictDetails{
			AssignmentID: conflictErr.AssignmentID,
			CareType:     conflictErr.CareType,
			StartTime:    conflictErr.Start,
			EndTime:      conflictErr.End,
		},
	})
}

// handleServiceError переводит доменные ошибки в HTTP-коды; всё остальное
// считается внутренней ошибкой.
func handleServiceError(c *gin.Context, err error) {
	var conflictErr *domain.SchedulingConflictError
	switch {
	case errors.As(err, &conflictErr):
		conflictResponse(c, conflictErr)
	case errors.Is(err, domain.ErrAlreadyAssigned):
		errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrFamilyNotFound),
		errors.Is(err, domain.ErrProviderNotFound),
		errors.Is(err, domain.ErrRequestNotFound),
		errors.Is(err, domain.ErrAssignmentNotFound):
		notFoundResponse(c, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrSessionExpired):
		errorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		badRequestResponse(c, err.Error())
	default:
		errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
