// Package v1 exposes the core operations over a thin JSON HTTP surface.
// Authentication is handled by the surrounding layer; the user id arrives in
// the X-User-ID header.
package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	errs "github.com/cindyylim/LanguageLearningApp-sub000/internal/errors"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/internal/observability"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/middleware"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/quiz"
)

// UserIDHeader carries the authenticated user id set by the auth layer.
const UserIDHeader = "X-User-ID"

// APIV1Service registers the v1 routes.
type APIV1Service struct {
	quizService *quiz.Service
	limiter     *middleware.RateLimiter
	logger      *slog.Logger
}

// NewAPIV1Service creates the v1 API service.
func NewAPIV1Service(quizService *quiz.Service, logger *slog.Logger) *APIV1Service {
	return &APIV1Service{
		quizService: quizService,
		limiter:     middleware.NewRateLimiter(time.Second/10, 20),
		logger:      logger,
	}
}

// RegisterRoutes registers all v1 routes on the echo server.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.health)

	group := e.Group("/api/v1", s.requireUser, s.rateLimit)
	group.POST("/quizzes/generate", s.generateQuiz)
	group.POST("/quizzes/:uid/attempts", s.submitQuizAnswers)
	group.GET("/progress", s.getProgress)
	group.GET("/recommendations", s.getRecommendations)
	group.POST("/lists/generate", s.generateVocabularyList)
	group.POST("/sentences", s.generateSentences)
	group.POST("/complexity", s.analyzeComplexity)
}

func (s *APIV1Service) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := strconv.ParseInt(c.Request().Header.Get(UserIDHeader), 10, 32)
		if err != nil || userID <= 0 {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid user id")
		}
		c.Set("userID", int32(userID))
		return next(c)
	}
}

func (s *APIV1Service) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		key := c.Request().Header.Get(UserIDHeader)
		if !s.limiter.Allow(key) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

func userID(c echo.Context) int32 {
	id, _ := c.Get("userID").(int32)
	return id
}

// request creates the per-request logging context for one operation.
func (s *APIV1Service) request(c echo.Context, operation string) *observability.RequestContext {
	return observability.NewRequestContext(s.logger, operation, userID(c))
}

// httpError maps service errors onto HTTP statuses; NOT_FOUND is surfaced
// distinctly, everything else is a generic failure.
func (s *APIV1Service) httpError(rc *observability.RequestContext, err error) error {
	if errs.IsNotFound(err) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	rc.Error("request failed", err,
		slog.String(observability.LogFieldErrorCode, string(errs.CodeOf(err))),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}

func (s *APIV1Service) health(c echo.Context) error {
	if err := s.quizService.HealthCheck(c.Request().Context()); err != nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type generateQuizRequest struct {
	ListID        string `json:"listId"`
	QuestionCount int    `json:"questionCount"`
	Difficulty    string `json:"difficulty"`
}

func (s *APIV1Service) generateQuiz(c echo.Context) error {
	var req generateQuizRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = 5
	}

	rc := s.request(c, "generate_quiz")
	result, err := s.quizService.GenerateQuiz(c.Request().Context(), req.ListID, quiz.GenerateOptions{
		QuestionCount: req.QuestionCount,
		Difficulty:    req.Difficulty,
	}, userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}

	rc.Info("quiz generated",
		slog.String(observability.LogFieldQuizUID, result.Quiz.UID),
		slog.Int("question_count", len(result.Questions)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return c.JSON(http.StatusOK, result)
}

type submitAnswersRequest struct {
	Answers []struct {
		QuestionID int32  `json:"questionId"`
		Answer     string `json:"answer"`
	} `json:"answers"`
}

func (s *APIV1Service) submitQuizAnswers(c echo.Context) error {
	var req submitAnswersRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	answers := make([]quiz.AnswerSubmission, 0, len(req.Answers))
	for _, answer := range req.Answers {
		answers = append(answers, quiz.AnswerSubmission{
			QuestionID: answer.QuestionID,
			AnswerText: answer.Answer,
		})
	}

	rc := s.request(c, "submit_quiz_answers")
	result, err := s.quizService.SubmitQuizAnswers(c.Request().Context(), c.Param("uid"), answers, userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}

	rc.Info("quiz attempt scored",
		slog.String(observability.LogFieldQuizUID, c.Param("uid")),
		slog.Float64("score", result.Attempt.Score),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return c.JSON(http.StatusOK, result)
}

func (s *APIV1Service) getProgress(c echo.Context) error {
	rc := s.request(c, "get_progress")
	summary, err := s.quizService.GetProgressSummary(c.Request().Context(), userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}
	return c.JSON(http.StatusOK, summary)
}

func (s *APIV1Service) getRecommendations(c echo.Context) error {
	rc := s.request(c, "get_recommendations")
	recommendations, err := s.quizService.GetRecommendations(c.Request().Context(), userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}
	return c.JSON(http.StatusOK, recommendations)
}

type generateListRequest struct {
	Topic          string `json:"topic"`
	Count          int    `json:"count"`
	TargetLanguage string `json:"targetLanguage"`
	NativeLanguage string `json:"nativeLanguage"`
}

func (s *APIV1Service) generateVocabularyList(c echo.Context) error {
	var req generateListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Topic == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "topic is required")
	}
	if req.Count <= 0 {
		req.Count = 10
	}

	rc := s.request(c, "generate_vocabulary_list")
	result, err := s.quizService.GenerateVocabularyList(c.Request().Context(), quiz.VocabularyListRequest{
		Topic:          req.Topic,
		Count:          req.Count,
		TargetLanguage: req.TargetLanguage,
		NativeLanguage: req.NativeLanguage,
	}, userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}

	rc.Info("vocabulary list generated",
		slog.String("topic", req.Topic),
		slog.Int("word_count", len(result.Words)),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return c.JSON(http.StatusOK, result)
}

type generateSentencesRequest struct {
	WordIDs []string `json:"wordIds"`
}

func (s *APIV1Service) generateSentences(c echo.Context) error {
	var req generateSentencesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}

	rc := s.request(c, "generate_sentences")
	sentences, err := s.quizService.GenerateSentences(c.Request().Context(), req.WordIDs, userID(c))
	if err != nil {
		return s.httpError(rc, err)
	}
	return c.JSON(http.StatusOK, sentences)
}

type analyzeComplexityRequest struct {
	Text string `json:"text"`
}

func (s *APIV1Service) analyzeComplexity(c echo.Context) error {
	var req analyzeComplexityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request")
	}
	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	report := s.quizService.AnalyzeComplexity(c.Request().Context(), req.Text)
	return c.JSON(http.StatusOK, report)
}
