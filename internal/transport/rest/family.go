package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

// @Summary Список семей
// @Description Возвращает список семей с пагинацией
// @Tags Семьи
// @Accept json
// @Produce json
// @Param limit query int false "Лимит записей на странице (по умолчанию 20)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Success 200 {array} domain.Family "Список семей"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /families [get]
func (h *Handler) getFamilies(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 0 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	families, err := h.services.Family.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("ошибка при получении списка семей", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при получении списка семей")
		return
	}

	successResponse(c, http.StatusOK, families)
}

// @Summary Получить семью по ID
// @Description Возвращает данные семьи по указанному ID
// @Tags Семьи
// @Accept json
// @Produce json
// @Param id path int true "ID семьи"
// @Success 200 {object} domain.Family "Данные семьи"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Семья не найдена"
// @Security ApiKeyAuth
// @Router /families/{id} [get]
func (h *Handler) getFamilyByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	family, err := h.services.Family.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, family)
}

// @Summary Создать семью
// @Description Создает семью с настройкой предпочтения постоянства специалиста
// @Tags Семьи
// @Accept json
// @Produce json
// @Param input body domain.CreateFamilyDTO true "Данные семьи"
// @Success 201 {object} map[string]interface{} "ID созданной семьи"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Security ApiKeyAuth
// @Router /families [post]
func (h *Handler) createFamily(c *gin.Context) {
	var req domain.CreateFamilyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Family.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновить семью
// @Description Обновляет имя семьи и предпочтение постоянства
// @Tags Семьи
// @Accept json
// @Produce json
// @Param id path int true "ID семьи"
// @Param input body domain.UpdateFamilyDTO true "Обновляемые поля"
// @Success 200 {object} successResponseBody "Семья обновлена"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Семья не найдена"
// @Security ApiKeyAuth
// @Router /families/{id} [put]
func (h *Handler) updateFamily(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	familyID, err := h.familyScope(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}
	if familyID != nil && *familyID != id {
		forbiddenResponse(c, "можно изменять только свою семью")
		return
	}

	var req domain.UpdateFamilyDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Family.Update(c.Request.Context(), id, req); err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"id": id,
	})
}

// @Summary Удалить семью
// @Description Удаляет семью по ID
// @Tags Семьи
// @Accept json
// @Produce json
// @Param id path int true "ID семьи"
// @Success 204 {object} nil "Семья удалена"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Семья не найдена"
// @Security ApiKeyAuth
// @Router /families/{id} [delete]
func (h *Handler) deleteFamily(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Family.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}
