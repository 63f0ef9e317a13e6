package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type suggestRequest struct {
	RequestID int64 `json:"request_id" binding:"required"`
}

// @Summary Рекомендация специалиста
// @Description Запрашивает у языковой модели лучшего специалиста для заявки с учетом предпочтения постоянства семьи
// @Tags Рекомендации
// @Accept json
// @Produce json
// @Param input body suggestRequest true "ID заявки"
// @Success 200 {object} domain.SuggestionResult "Рекомендация с флагом конфликта"
// @Failure 400 {object} errorResponseBody "Ошибка валидации или некорректный ответ модели"
// @Failure 404 {object} errorResponseBody "Заявка не найдена"
// @Failure 500 {object} errorResponseBody "Ошибка обращения к модели"
// @Security ApiKeyAuth
// @Router /ai-suggest [post]
func (h *Handler) suggestProvider(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	request, err := h.services.Request.GetByID(c.Request.Context(), req.RequestID)
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

	result, err := h.services.Suggestion.Suggest(c.Request.Context(), req.RequestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, result)
}
