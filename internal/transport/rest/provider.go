package rest

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carematch/internal/domain"
)

// @Summary Подбор специалистов по уходу
// @Description Возвращает страницу специалистов с фильтрацией по специальности, тексту и доступности
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param specialty query string false "Специальность (частичное совпадение)"
// @Param search query string false "Поиск по имени и специальности"
// @Param day query string false "День недели в нижнем регистре (monday..sunday)"
// @Param hour query int false "Час дня 0-23; специалист должен быть доступен в этот час"
// @Param sort_by query string false "Поле сортировки: name или specialty (по умолчанию name)"
// @Param sort_order query string false "Порядок сортировки: asc или desc (по умолчанию asc)"
// @Param page query int false "Номер страницы (по умолчанию 1)"
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Success 200 {object} paginatedResponse "Страница специалистов"
// @Failure 400 {object} errorResponseBody "Некорректные параметры"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Router /providers [get]
func (h *Handler) queryProviders(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		limit = 10
	}

	query := domain.ProviderQuery{
		Specialty: c.Query("specialty"),
		Search:    c.Query("search"),
		Day:       c.Query("day"),
		SortBy:    domain.ProviderSortBy(c.DefaultQuery("sort_by", "name")),
		SortOrder: domain.SortOrder(c.DefaultQuery("sort_order", "asc")),
		Page:      page,
		PageSize:  limit,
	}

	if hourStr := c.Query("hour"); hourStr != "" {
		hour, err := strconv.Atoi(hourStr)
		if err != nil || hour < 0 || hour > 23 {
			badRequestResponse(c, "час должен быть числом от 0 до 23")
			return
		}
		query.Hour = &hour
	}

	if query.Day != "" && !domain.IsWeekday(query.Day) {
		badRequestResponse(c, "неизвестный день недели")
		return
	}

	result, err := h.services.Provider.Query(c.Request.Context(), query)
	if err != nil {
		h.logger.Error("ошибка при подборе специалистов", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при подборе специалистов")
		return
	}

	paginatedSuccessResponse(c, result.Items, result.Total, result.Page, result.PageSize)
}

// @Summary Получить специалиста по ID
// @Description Возвращает информацию о специалисте по указанному ID
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 200 {object} domain.Provider "Данные специалиста"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Router /providers/{id} [get]
func (h *Handler) getProviderByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	provider, err := h.services.Provider.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, provider)
}

// @Summary Создать специалиста
// @Description Создает специалиста по уходу с недельным расписанием доступности
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param input body domain.CreateProviderDTO true "Данные специалиста"
// @Success 201 {object} map[string]interface{} "ID созданного специалиста"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /providers [post]
func (h *Handler) createProvider(c *gin.Context) {
	var req domain.CreateProviderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	id, err := h.services.Provider.Create(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	createdResponse(c, map[string]interface{}{
		"id": id,
	})
}

// @Summary Обновить специалиста
// @Description Обновляет данные специалиста, включая расписание доступности
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Param input body domain.UpdateProviderDTO true "Обновляемые поля"
// @Success 200 {object} successResponseBody "Специалист обновлен"
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Security ApiKeyAuth
// @Router /providers/{id} [put]
func (h *Handler) updateProvider(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	var req domain.UpdateProviderDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	if err := h.services.Provider.Update(c.Request.Context(), id, req); err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"id": id,
	})
}

// @Summary Удалить специалиста
// @Description Удаляет специалиста по ID
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 204 {object} nil "Специалист удален"
// @Failure 400 {object} errorResponseBody "Неверный формат ID"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Security ApiKeyAuth
// @Router /providers/{id} [delete]
func (h *Handler) deleteProvider(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Provider.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Загрузить фото специалиста
// @Description Загружает фото специалиста в файловое хранилище
// @Tags Специалисты
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "ID специалиста"
// @Param photo formData file true "Файл фотографии"
// @Success 200 {object} successResponseBody "Фото загружено"
// @Failure 400 {object} errorResponseBody "Некорректный файл"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Security ApiKeyAuth
// @Router /providers/{id}/photo [post]
func (h *Handler) uploadProviderPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "файл фотографии не передан")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("ошибка открытия загружаемого файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при обработке файла")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("ошибка чтения загружаемого файла", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "ошибка при обработке файла")
		return
	}

	if err := h.services.Provider.UploadPhoto(c.Request.Context(), id, data, fileHeader.Filename); err != nil {
		handleServiceError(c, err)
		return
	}

	successResponse(c, http.StatusOK, map[string]interface{}{
		"id": id,
	})
}

// @Summary Удалить фото специалиста
// @Description Удаляет фото специалиста из файлового хранилища
// @Tags Специалисты
// @Accept json
// @Produce json
// @Param id path int true "ID специалиста"
// @Success 204 {object} nil "Фото удалено"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Security ApiKeyAuth
// @Router /providers/{id}/photo [delete]
func (h *Handler) deleteProviderPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "неверный формат ID")
		return
	}

	if err := h.services.Provider.DeletePhoto(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	noContentResponse(c)
}
