package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"carematch/internal/domain"
	"carematch/internal/repository"
	"carematch/internal/storage"
	"carematch/pkg/cache"
)

const providerCachePrefix = "providers:"

type ProviderServiceImpl struct {
	repo        repository.ProviderRepository
	fileStorage storage.FileStorage
	cache       cache.Cache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

func NewProviderService(
	repo repository.ProviderRepository,
	fileStorage storage.FileStorage,
	cache cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ProviderServiceImpl {
	return &ProviderServiceImpl{
		repo:        repo,
		fileStorage: fileStorage,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

func (s *ProviderServiceImpl) Create(ctx context.Context, dto domain.CreateProviderDTO) (int64, error) {
	if dto.Availability != nil {
		if err := dto.Availability.Validate(); err != nil {
			s.logger.Error("некорректное расписание доступности", zap.Error(err))
			return 0, err
		}
	}

	id, err := s.repo.Create(ctx, dto)
	if err != nil {
		s.logger.Error("ошибка создания специалиста по уходу", zap.Error(err))
		return 0, fmt.Errorf("ошибка при создании специалиста: %w", err)
	}

	s.invalidateCache(ctx)
	return id, nil
}

func (s *ProviderServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("ошибка получения специалиста", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return provider, nil
}

func (s *ProviderServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateProviderDTO) error {
	if dto.Availability != nil {
		if err := dto.Availability.Validate(); err != nil {
			s.logger.Error("некорректное расписание доступности", zap.Int64("id", id), zap.Error(err))
			return err
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		s.logger.Error("ошибка обновления специалиста", zap.Int64("id", id), zap.Error(err))
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *ProviderServiceImpl) Delete(ctx context.Context, id int64) error {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("специалист для удаления не найден", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("ошибка удаления специалиста", zap.Int64("id", id), zap.Error(err))
		return err
	}

	if provider.PhotoURL != "" && s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, provider.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить фото специалиста из хранилища", zap.Int64("id", id), zap.Error(err))
		}
	}

	s.invalidateCache(ctx)
	return nil
}

// Query выполняет подбор специалистов: атрибутные фильтры уходят в хранилище,
// фильтр доступности применяется в памяти по распарсенным слотам, затем
// стабильная сортировка и пагинация.
func (s *ProviderServiceImpl) Query(ctx context.Context, query domain.ProviderQuery) (*domain.ProviderPage, error) {
	query = normalizeQuery(query)

	cacheKey := providerCacheKey(query)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var page domain.ProviderPage
			if err := json.Unmarshal(data, &page); err == nil {
				return &page, nil
			}
		}
	}

	filter := domain.ProviderFilter{}
	if query.Specialty != "" {
		filter.Specialty = &query.Specialty
	}
	if query.Search != "" {
		filter.Search = &query.Search
	}

	providers, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ошибка получения списка специалистов", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка специалистов: %w", err)
	}

	providers = filterByAvailability(providers, query.Day, query.Hour)
	sortProviders(providers, query.SortBy, query.SortOrder)

	page := paginateProviders(providers, query.Page, query.PageSize)

	if s.cache != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL); err != nil {
				s.logger.Warn("не удалось сохранить страницу подбора в кэш", zap.Error(err))
			}
		}
	}

	return page, nil
}

func (s *ProviderServiceImpl) UploadPhoto(ctx context.Context, providerID int64, photo []byte, filename string) error {
	if s.fileStorage == nil {
		return fmt.Errorf("файловое хранилище не настроено")
	}

	provider, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		s.logger.Error("специалист не найден при загрузке фото", zap.Int64("id", providerID), zap.Error(err))
		return err
	}

	fileURL, err := s.fileStorage.UploadFile(ctx, photo, filename)
	if err != nil {
		s.logger.Error("ошибка загрузки фото специалиста", zap.Int64("id", providerID), zap.Error(err))
		return fmt.Errorf("ошибка при загрузке фото: %w", err)
	}

	if err := s.repo.UpdatePhoto(ctx, providerID, fileURL); err != nil {
		s.logger.Error("ошибка сохранения ссылки на фото", zap.Int64("id", providerID), zap.Error(err))
		return err
	}

	if provider.PhotoURL != "" {
		if err := s.fileStorage.DeleteFile(ctx, provider.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить старое фото специалиста", zap.Int64("id", providerID), zap.Error(err))
		}
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *ProviderServiceImpl) DeletePhoto(ctx context.Context, providerID int64) error {
	provider, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		s.logger.Error("специалист не найден при удалении фото", zap.Int64("id", providerID), zap.Error(err))
		return err
	}

	if provider.PhotoURL == "" {
		return nil
	}

	if err := s.repo.UpdatePhoto(ctx, providerID, ""); err != nil {
		s.logger.Error("ошибка очистки ссылки на фото", zap.Int64("id", providerID), zap.Error(err))
		return err
	}

	if s.fileStorage != nil {
		if err := s.fileStorage.DeleteFile(ctx, provider.PhotoURL); err != nil {
			s.logger.Warn("не удалось удалить фото специалиста из хранилища", zap.Int64("id", providerID), zap.Error(err))
		}
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *ProviderServiceImpl) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, providerCachePrefix+"*"); err != nil {
		s.logger.Warn("не удалось инвалидировать кэш подбора", zap.Error(err))
	}
}

func normalizeQuery(query domain.ProviderQuery) domain.ProviderQuery {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PageSize < 1 {
		query.PageSize = 10
	}
	if query.SortBy != domain.ProviderSortBySpecialty {
		query.SortBy = domain.ProviderSortByName
	}
	if query.SortOrder != domain.SortOrderDesc {
		query.SortOrder = domain.SortOrderAsc
	}
	query.Day = strings.ToLower(strings.TrimSpace(query.Day))
	return query
}

func providerCacheKey(query domain.ProviderQuery) string {
	hour := ""
	if query.Hour != nil {
		hour = fmt.Sprintf("%d", *query.Hour)
	}
	return fmt.Sprintf("%s%s:%s:%s:%s:%s:%s:%d:%d",
		providerCachePrefix,
		query.Specialty, query.Search, query.Day, hour,
		query.SortBy, query.SortOrder, query.Page, query.PageSize,
	)
}

func filterByAvailability(providers []domain.Provider, day string, hour *int) []domain.Provider {
	if day == "" && hour == nil {
		return providers
	}

	filtered := make([]domain.Provider, 0, len(providers))
	for _, p := range providers {
		switch {
		case day != "" && hour != nil:
			if p.Availability.AvailableAt(day, *hour) {
				filtered = append(filtered, p)
			}
		case day != "":
			if p.Availability.AvailableOn(day) {
				filtered = append(filtered, p)
			}
		default:
			if p.Availability.AvailableAtAnyDay(*hour) {
				filtered = append(filtered, p)
			}
		}
	}
	return filtered
}

func sortProviders(providers []domain.Provider, sortBy domain.ProviderSortBy, order domain.SortOrder) {
	sort.SliceStable(providers, func(i, j int) bool {
		var a, b string
		switch sortBy {
		case domain.ProviderSortBySpecialty:
			a, b = providers[i].Specialty, providers[j].Specialty
		default:
			a, b = providers[i].Name, providers[j].Name
		}
		less := strings.ToLower(a) < strings.ToLower(b)
		if order == domain.SortOrderDesc {
			return !less && !strings.EqualFold(a, b)
		}
		return less
	})
}

func paginateProviders(providers []domain.Provider, page, pageSize int) *domain.ProviderPage {
	total := len(providers)
	totalPages := (total + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return &domain.ProviderPage{
		Items:      providers[start:end],
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
