// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mnemos/mnemos-api/internal/api/shared"
	"github.com/mnemos/mnemos-api/internal/domain"
	"github.com/mnemos/mnemos-api/internal/platform/logger"
	"github.com/mnemos/mnemos-api/internal/redact"
	"github.com/mnemos/mnemos-api/internal/service/word_practice"
)

// VocabularyItemResponse represents the response data for a vocabulary item.
type VocabularyItemResponse struct {
	ID             string     `json:"id"`
	Word           string     `json:"word"`
	Meaning        string     `json:"meaning"`
	Phonetic       string     `json:"phonetic,omitempty"`
	Themes         []string   `json:"themes,omitempty"`
	Difficulty     string     `json:"difficulty"`
	ReviewStatus   string     `json:"review_status"`
	ReviewCount    int        `json:"review_count"`
	CorrectCount   int        `json:"correct_count"`
	IncorrectCount int        `json:"incorrect_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	NextReviewAt   *time.Time `json:"next_review_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// PracticeWordsResponse wraps a selected practice session.
type PracticeWordsResponse struct {
	Words []VocabularyItemResponse `json:"words"`
	Count int                      `json:"count"`
}

// RecordResultRequest represents the request body for recording a practice
// attempt.
type RecordResultRequest struct {
	VocabularyID string `json:"vocabulary_id" validate:"required,uuid"`
	IsCorrect    *bool  `json:"is_correct"    validate:"required"`
}

// PracticeHandler handles practice-related HTTP requests.
type PracticeHandler struct {
	practiceService word_practice.Service
	defaultLimit    int
	defaultDays     int
	logger          *slog.Logger
}

// PracticeHandlerConfig carries the request defaults applied when a query
// parameter is omitted.
type PracticeHandlerConfig struct {
	DefaultSessionLimit int
	DefaultHistoryDays  int
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(
	practiceService word_practice.Service,
	cfg PracticeHandlerConfig,
	logger *slog.Logger,
) *PracticeHandler {
	if practiceService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("practice service cannot be nil for PracticeHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PracticeHandler")
	}
	if cfg.DefaultSessionLimit <= 0 {
		cfg.DefaultSessionLimit = 10
	}
	if cfg.DefaultHistoryDays <= 0 {
		cfg.DefaultHistoryDays = 30
	}

	return &PracticeHandler{
		practiceService: practiceService,
		defaultLimit:    cfg.DefaultSessionLimit,
		defaultDays:     cfg.DefaultHistoryDays,
		logger:          logger.With(slog.String("component", "practice_handler")),
	}
}

// GetPracticeWords handles GET /practice/words requests.
// It returns a prioritized, shuffled practice session for the authenticated
// user. Optional query parameters: limit, difficulty, status, theme.
func (h *PracticeHandler) GetPracticeWords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	limit := h.defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Warn("invalid limit parameter", slog.String("limit", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	params := word_practice.SelectionParams{
		Limit:        limit,
		Difficulty:   domain.Difficulty(r.URL.Query().Get("difficulty")),
		ReviewStatus: domain.ReviewStatus(r.URL.Query().Get("status")),
		Theme:        r.URL.Query().Get("theme"),
	}

	words, err := h.practiceService.SelectForPractice(r.Context(), userID, params)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to select practice words"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	response := PracticeWordsResponse{
		Words: make([]VocabularyItemResponse, 0, len(words)),
		Count: len(words),
	}
	for _, item := range words {
		response.Words = append(response.Words, itemToResponse(item))
	}

	log.Debug("practice words selected",
		slog.String("user_id", userID.String()),
		slog.Int("count", response.Count))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// RecordResult handles POST /practice/result requests.
// It records one practice attempt and returns the rescheduled item.
func (h *PracticeHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req RecordResultRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		log.Warn("validation error",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	itemID, err := uuid.Parse(req.VocabularyID)
	if err != nil {
		log.Warn("invalid vocabulary ID format", slog.String("vocabulary_id", req.VocabularyID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid vocabulary ID format")
		return
	}

	updated, err := h.practiceService.RecordAttempt(r.Context(), userID, itemID, *req.IsCorrect)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to record practice result"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("practice result recorded",
		slog.String("user_id", userID.String()),
		slog.String("item_id", itemID.String()),
		slog.Bool("is_correct", *req.IsCorrect))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(updated))
}

// GetStatistics handles GET /vocabulary/statistics requests.
func (h *PracticeHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	stats, err := h.practiceService.GetStatistics(r.Context(), userID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to compute statistics"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("statistics computed",
		slog.String("user_id", userID.String()),
		slog.Int("total_words", stats.TotalWords))
	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// GetProgressHistory handles GET /vocabulary/progress-history requests.
// Optional query parameter: days (defaults to the configured history window).
func (h *PracticeHandler) GetProgressHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		log.Warn("user ID not found or invalid in request context")
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	days := h.defaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Warn("invalid days parameter", slog.String("days", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid days parameter")
			return
		}
		days = parsed
	}

	history, err := h.practiceService.GetProgressHistory(r.Context(), userID, days)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to build progress history"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("progress history built",
		slog.String("user_id", userID.String()),
		slog.Int("days", days),
		slog.Int("points", len(history.DataPoints)))
	shared.RespondWithJSON(w, r, http.StatusOK, history)
}

// itemToResponse converts a domain.VocabularyItem to a VocabularyItemResponse.
// The owner ID is implicit in the authenticated request and never echoed back.
func itemToResponse(item *domain.VocabularyItem) VocabularyItemResponse {
	return VocabularyItemResponse{
		ID:             item.ID.String(),
		Word:           item.Word,
		Meaning:        item.Meaning,
		Phonetic:       item.Phonetic,
		Themes:         item.Tags.Themes,
		Difficulty:     string(item.Difficulty),
		ReviewStatus:   string(item.ReviewStatus),
		ReviewCount:    item.ReviewCount,
		CorrectCount:   item.CorrectCount,
		IncorrectCount: item.IncorrectCount,
		LastReviewedAt: item.LastReviewedAt,
		NextReviewAt:   item.NextReviewAt,
		CreatedAt:      item.CreatedAt,
		UpdatedAt:      item.UpdatedAt,
	}
}
