package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"carematch/internal/domain"
	"carematch/internal/repository"
)

type SuggestionServiceImpl struct {
	recommender    Recommender
	requestRepo    repository.RequestRepository
	providerRepo   repository.ProviderRepository
	assignmentRepo repository.AssignmentRepository
	assignments    AssignmentService
	logger         *zap.Logger
}

func NewSuggestionService(
	recommender Recommender,
	requestRepo repository.RequestRepository,
	providerRepo repository.ProviderRepository,
	assignmentRepo repository.AssignmentRepository,
	assignments AssignmentService,
	logger *zap.Logger,
) *SuggestionServiceImpl {
	return &SuggestionServiceImpl{
		recommender:    recommender,
		requestRepo:    requestRepo,
		providerRepo:   providerRepo,
		assignmentRepo: assignmentRepo,
		assignments:    assignments,
		logger:         logger,
	}
}

// ответ модели: JSON-объект с полями providerId, name, reasoning
type recommendationPayload struct {
	ProviderID int64  `json:"providerId"`
	Name       string `json:"name"`
	Reasoning  string `json:"reasoning"`
}

func (s *SuggestionServiceImpl) Suggest(ctx context.Context, requestID int64) (*domain.SuggestionResult, error) {
	if s.recommender == nil {
		return nil, fmt.Errorf("рекомендательная модель не настроена")
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		s.logger.Error("заявка не найдена для рекомендации", zap.Int64("requestID", requestID), zap.Error(err))
		return nil, domain.ErrRequestNotFound
	}

	providers, err := s.providerRepo.List(ctx, domain.ProviderFilter{})
	if err != nil {
		s.logger.Error("ошибка получения списка специалистов для рекомендации", zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении списка специалистов: %w", err)
	}
	if len(providers) == 0 {
		return nil, domain.ErrProviderNotFound
	}

	var history []domain.Assignment
	if request.Family != nil && request.Family.Consistency {
		history, err = s.assignmentRepo.ListByFamily(ctx, request.FamilyID)
		if err != nil {
			s.logger.Warn("не удалось получить историю назначений семьи", zap.Int64("familyID", request.FamilyID), zap.Error(err))
			history = nil
		}
	}

	prompt := buildSuggestionPrompt(request, providers, history)

	answer, err := s.recommender.Recommend(ctx, prompt)
	if err != nil {
		s.logger.Error("ошибка обращения к рекомендательной модели", zap.Int64("requestID", requestID), zap.Error(err))
		return nil, fmt.Errorf("ошибка при получении рекомендации: %w", err)
	}

	payload, err := parseRecommendation(answer)
	if err != nil {
		s.logger.Error("модель вернула некорректный JSON", zap.String("answer", answer), zap.Error(err))
		return nil, fmt.Errorf("%w: модель вернула некорректный ответ", domain.ErrInvalidInput)
	}

	provider, err := s.providerRepo.GetByID(ctx, payload.ProviderID)
	if err != nil {
		s.logger.Error("модель предложила несуществующего специалиста", zap.Int64("providerID", payload.ProviderID))
		return nil, domain.ErrProviderNotFound
	}

	conflict, err := s.assignments.FindConflict(ctx, provider.ID, request.Interval(), nil)
	if err != nil {
		return nil, err
	}

	return &domain.SuggestionResult{
		RequestID: requestID,
		Suggestion: domain.Suggestion{
			ProviderID: provider.ID,
			Name:       provider.Name,
			Reasoning:  payload.Reasoning,
		},
		HasConflict: conflict != nil,
	}, nil
}

func buildSuggestionPrompt(request *domain.CareRequest, providers []domain.Provider, history []domain.Assignment) string {
	var sb strings.Builder

	sb.WriteString("You are a scheduling assistant. A family has made a care request.\n")
	sb.WriteString("Pick the SINGLE best provider based on family consistency preference, specialty, and availability.\n")
	sb.WriteString("Return ONLY valid JSON in this format:\n\n")
	sb.WriteString("{\n  \"providerId\": <number>,\n  \"name\": \"<string>\",\n  \"reasoning\": \"<string>\"\n}\n\n")

	familyName := ""
	consistency := false
	if request.Family != nil {
		familyName = request.Family.Name
		consistency = request.Family.Consistency
	}

	sb.WriteString("Request:\n")
	fmt.Fprintf(&sb, "- Care Type: %s\n", request.CareType)
	fmt.Fprintf(&sb, "- Time: %s to %s\n", request.StartTime.Format(time.RFC3339), request.EndTime.Format(time.RFC3339))
	fmt.Fprintf(&sb, "- Family: %s (consistency: %t)\n", familyName, consistency)

	if consistency && len(history) > 0 {
		sb.WriteString("\nPrevious assignments for this family:\n")
		for _, a := range history {
			if a.Provider == nil || a.Request == nil {
				continue
			}
			fmt.Fprintf(&sb, "- %s (%s) for %s\n", a.Provider.Name, a.Provider.Specialty, a.Request.CareType)
		}
	}

	sb.WriteString("\nAvailable Providers:\n")
	for _, p := range providers {
		availability, _ := json.Marshal(p.Availability)
		fmt.Fprintf(&sb, "- id:%d, %s (%s), availability: %s\n", p.ID, p.Name, p.Specialty, availability)
	}

	if consistency {
		sb.WriteString("\nIMPORTANT: This family prefers consistency. Prioritize providers they've worked with before if available and suitable.\n")
	} else {
		sb.WriteString("\nThis family is flexible with different providers.\n")
	}

	return sb.String()
}

// parseRecommendation терпимо относится к markdown-обёртке вокруг JSON,
// которую модели периодически добавляют вопреки инструкции.
func parseRecommendation(answer string) (*recommendationPayload, error) {
	cleaned := strings.TrimSpace(answer)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if start := strings.Index(cleaned, "{"); start > 0 {
		cleaned = cleaned[start:]
	}
	if end := strings.LastIndex(cleaned, "}"); end >= 0 && end < len(cleaned)-1 {
		cleaned = cleaned[:end+1]
	}

	var payload recommendationPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, err
	}
	if payload.ProviderID == 0 {
		return nil, fmt.Errorf("в ответе отсутствует providerId")
	}
	return &payload, nil
}
