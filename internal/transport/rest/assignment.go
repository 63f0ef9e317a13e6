package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

// @Summary Создать назначение
// @Description Назначает специалиста на заявку с проверкой конфликтов расписания
// @Tags Назначения
// @Accept json
// @Produce json
// @Param input body domain.CreateAssignmentDTO true "Данные назначения"
// @Success 201 {object} domain.Assignment "Созданное назначение"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Заявка или специалист не найдены"
// @Failure 409 {object} conflictResponseBody "Конфликт расписания или заявка уже назначена"
// @Security ApiKeyAuth
// @Router /assignments [post]
func (h *Handler) createAssignment(c *gin.Context) {
	var req domain.CreateAssignmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	assignment, err := h.services.Assignment.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	createdResponse(c, assignment)
}

// @Summary Список назначений
// @Description Возвращает назначения с фильтрацией по специалисту и семье
// @Tags Назначения
// @Accept json
// @Produce json
// @Param provider_id query int false "ID специалиста"
// @Param family_id query int false "ID семьи"
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {array} domain.Assignment "Список назначений"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /assignments [get]
func (h *Handler) getAssignments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := domain.AssignmentFilter{
		Limit:  limit,
		Offset: offset,
	}

	if providerIDStr := c.Query("provider_id"); providerIDStr != "" {
		providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID специалиста")
			return
		}
		filter.ProviderID = &providerID
	}

	if familyIDStr := c.Query("family_id"); familyIDStr != "" {
		familyID, err := strconv.ParseInt(familyIDStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат ID семьи")
			return
		}
		filter.FamilyID = &familyID
	}

	scopeFamilyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if scopeFamilyID != nil {
		filter.FamilyID = scopeFamilyID
	}

	assignments, err := h.services.Assignment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("ошибка при получении списка назначений", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении списка назначений")
		return
	}

	successResponse(c, http.StatusOK, assignments)
}

// @Summary Получить назначение по ID
// @Description Возвращает назначение вместе со специалистом и заявкой
// @Tags Назначения
// @Accept json
// @Produce json
// @Param id path int true "ID назначения"
// @Success 200 {object} domain.Assignment "Данные назначения"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Назначение не найдено"
// @Security ApiKeyAuth
// @Router /assignments/{id} [get]
func (h *Handler) getAssignmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	assignment, err := h.services.Assignment.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, assignment)
}

// @Summary Перенести назначение на другого специалиста
// @Description Меняет специалиста у назначения; само назначение исключается из проверки конфликтов
// @Tags Назначения
// @Accept json
// @Produce json
// @Param id path int true "ID назначения"
// @Param input body domain.UpdateAssignmentDTO true "Новый специалист"
// @Success 200 {object} domain.Assignment "Обновленное назначение"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Назначение или специалист не найдены"
// @Failure 409 {object} conflictResponseBody "Конфликт расписания"
// @Security ApiKeyAuth
// @Router /assignments/{id} [put]
func (h *Handler) updateAssignment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
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

	assignment, err := h.services.Assignment.UpdateProvider(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, assignment)
}

// @Summary Удалить назначение
// @Description Снимает специалиста с заявки
// @Tags Назначения
// @Accept json
// @Produce json
// @Param id path int true "ID назначения"
// @Success 204 {object} nil "Назначение удалено"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Назначение не найдено"
// @Security ApiKeyAuth
// @Router /assignments/{id} [delete]
func (h *Handler) deleteAssignment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Assignment.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}
