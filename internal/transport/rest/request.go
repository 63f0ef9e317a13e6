package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

// @Summary Создать заявку на уход
// @Description Создает заявку семьи на уход в заданном интервале времени
// @Tags Заявки
// @Accept json
// @Produce json
// @Param input body domain.CreateRequestDTO true "Данные заявки"
// @Success 201 {object} map[string]interface{} "ID созданной заявки"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Семья не найдена"
// @Security ApiKeyAuth
// @Router /requests [post]
func (h *Handler) createRequest(c *gin.Context) {
	var req domain.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	familyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if familyID != nil && *familyID != req.FamilyID {
		forbiddenResponse(c, "можно создавать заявки только для своей семьи")
		return
	}

	id, err := h.services.Request.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Список заявок
// @Description Возвращает заявки с фильтрацией по семье, типу ухода и датам
// @Tags Заявки
// @Accept json
// @Produce json
// @Param family_id query int false "ID семьи"
// @Param care_type query string false "Тип ухода"
// @Param date_from query string false "Начало периода (2006-01-02)"
// @Param date_to query string false "Конец периода (2006-01-02)"
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {object} paginatedResponse "Страница заявок"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /requests [get]
func (h *Handler) getRequests(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.RequestFilter{
		Limit:  limit,
		Offset: offset,
	}

	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		familyID, err := strconv.ParseInt(familyIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID семьи")
			return
		}
		filter.FamilyID = &familyID
	}

	if careType := c.Query("care_type"); careType != "" {
		filter.CareType = &careType
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		parsed, err := time.Parse("2006-01-02", dateFrom)
		if err == nil {
			filter.StartDate = &parsed
		}
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		parsed, err := time.Parse("2006-01-02", dateTo)
		if err == nil {
			parsed = parsed.Add(24 * time.Hour).Add(-time.Second)
			filter.EndDate = &parsed
		}
	}

	// семья видит только свои заявки
	scopeFamilyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if scopeFamilyID != nil {
		filter.FamilyID = scopeFamilyID
	}

	requests, total, err := h.services.Request.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении списка заявок", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении списка заявок")
		return
	}

	page := offset/limit + 1

	paginatedSuccessResponse(c, requests, total, page, limit)
}

// @Summary Получить заявку по ID
// @Description Возвращает заявку вместе с семьёй и назначением, если оно есть
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Success 200 {object} domain.CareRequest "Данные заявки"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /requests/{id} [get]
func (h *Handler) getRequestByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	request, err := h.services.Request.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	scopeFamilyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if scopeFamilyID != nil && *scopeFamilyID != request.FamilyID {
		forbiddenResponse(c)
		return
	}

	successResponse(c, http.StatusOK, request)
}

// @Summary Удалить заявку
// @Description Удаляет заявку вместе с её назначением
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Success 204 {object} nil "Заявка удалена"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Security ApiKeyAuth
// @Router /requests/{id} [delete]
func (h *Handler) deleteRequest(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	request, err := h.services.Request.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	scopeFamilyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if scopeFamilyID != nil && *scopeFamilyID != request.FamilyID {
		forbiddenResponse(c)
		return
	}

	if err := h.services.Request.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Назначить специалиста на заявку
// @Description Создает назначение для заявки с проверкой конфликтов расписания
// @Tags Заявки
// @Accept json
// @Produce json
// @Param id path int true "ID заявки"
// @Param input body domain.UpdateAssignmentDTO true "ID специалиста"
// @Success 201 {object} domain.Assignment "Созданное назначение"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Заявка или специалист не найдены"
// @Failure 409 {object} conflictResponseBody "Конфликт расписания или заявка уже назначена"
// @Security ApiKeyAuth
// @Router /requests/{id}/assign [post]
func (h *Handler) assignRequest(c *gin.Context) {
	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateAssignmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	assignment, err := h.services.Assignment.Create(c.Request.Context(), domain.CreateAssignmentDTO{
		RequestID:  requestID,
		ProviderID: req.ProviderID,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	createdResponse(c, assignment)
}
