package domain

// Suggestion — рекомендация специалиста для заявки, полученная от внешней
// модели. Рекомендация не является назначением: перед фиксацией она проходит
// те же проверки инвариантов, что и ручное назначение.
type Suggestion struct {
	ProviderID int64  `json:"provider_id"`
	Name       string `json:"name"`
	Reasoning  string `json:"reasoning"`
}

// SuggestionResult дополняет рекомендацию результатом предварительной
// проверки конфликта по интервалу заявки.
type SuggestionResult struct {
	RequestID   int64      `json:"request_id"`
	Suggestion  Suggestion `json:"suggested_provider"`
	HasConflict bool       `json:"has_conflict"`
}
