package v1

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai"
	"github.com/cindyylim/LanguageLearningApp-sub000/plugin/genai/metrics"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/generation"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/mastery"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/quiz"
	"github.com/cindyylim/LanguageLearningApp-sub000/server/service/streak"
	"github.com/cindyylim/LanguageLearningApp-sub000/store"
	"github.com/cindyylim/LanguageLearningApp-sub000/store/test"
)

type fixedLLM struct {
	response string
}

func (f *fixedLLM) Complete(context.Context, []genai.Message) (string, error) {
	return f.response, nil
}

func newTestServer(t *testing.T, llm *fixedLLM) (*echo.Echo, *store.Store) {
	t.Helper()
	ctx := context.Background()
	ts := test.NewTestingStore(ctx, t)
	t.Cleanup(func() { ts.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := genai.DefaultConfig()
	cfg.InitialDelay = time.Millisecond
	gen := genai.NewClientWithService(cfg, llm, &metrics.MockRecorder{})
	t.Cleanup(gen.Close)

	quizService := quiz.NewService(ts,
		generation.NewClient(gen, logger),
		mastery.NewEngine(ts, logger),
		streak.NewCalculator(ts),
		logger)

	e := echo.New()
	NewAPIV1Service(quizService, logger).RegisterRoutes(e)
	return e, ts
}

func doRequest(e *echo.Echo, method, path, userID, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(UserIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireUser(t *testing.T) {
	e, _ := newTestServer(t, &fixedLLM{response: "[]"})

	t.Run("MissingHeader", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/v1/progress", "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/v1/progress", "abc", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidHeader", func(t *testing.T) {
		rec := doRequest(e, http.MethodGet, "/api/v1/progress", "1", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGenerateQuizEndpoint(t *testing.T) {
	llm := &fixedLLM{}
	e, ts := newTestServer(t, llm)
	ctx := context.Background()

	list, err := ts.CreateVocabularyList(ctx, &store.VocabularyList{
		CreatorID: 1, Name: "Food", TargetLanguage: "Italian", NativeLanguage: "English",
	})
	require.NoError(t, err)
	word, err := ts.CreateWord(ctx, &store.Word{
		ListID: list.ID, CreatorID: 1, Text: "pane", Translation: "bread",
	})
	require.NoError(t, err)

	llm.response = fmt.Sprintf(
		`[{"wordId": %q, "type": "fill_blank", "question": "Il ___ e fresco.", "correctAnswer": "pane", "difficulty": "easy"}]`,
		word.ID)

	t.Run("Success", func(t *testing.T) {
		body := fmt.Sprintf(`{"listId": %q, "questionCount": 1, "difficulty": "easy"}`, list.ID)
		rec := doRequest(e, http.MethodPost, "/api/v1/quizzes/generate", "1", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Quiz struct {
				UID string
			}
			Questions []struct {
				ID     int32
				Prompt string
			}
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.NotEmpty(t, payload.Quiz.UID)
		require.Len(t, payload.Questions, 1)
	})

	t.Run("UnknownListIs404", func(t *testing.T) {
		body := fmt.Sprintf(`{"listId": %q, "questionCount": 1}`, store.NewWordID())
		rec := doRequest(e, http.MethodPost, "/api/v1/quizzes/generate", "1", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("OtherUsersListIs404", func(t *testing.T) {
		body := fmt.Sprintf(`{"listId": %q, "questionCount": 1}`, list.ID)
		rec := doRequest(e, http.MethodPost, "/api/v1/quizzes/generate", "2", body)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitAttemptEndpoint(t *testing.T) {
	llm := &fixedLLM{}
	e, ts := newTestServer(t, llm)
	ctx := context.Background()

	list, err := ts.CreateVocabularyList(ctx, &store.VocabularyList{CreatorID: 1, Name: "Food"})
	require.NoError(t, err)
	word, err := ts.CreateWord(ctx, &store.Word{ListID: list.ID, CreatorID: 1, Text: "pane", Translation: "bread"})
	require.NoError(t, err)

	llm.response = fmt.Sprintf(
		`[{"wordId": %q, "type": "fill_blank", "question": "Il ___", "correctAnswer": "pane", "difficulty": "easy"}]`,
		word.ID)

	genBody := fmt.Sprintf(`{"listId": %q, "questionCount": 1}`, list.ID)
	genRec := doRequest(e, http.MethodPost, "/api/v1/quizzes/generate", "1", genBody)
	require.Equal(t, http.StatusOK, genRec.Code)

	var generated struct {
		Quiz struct {
			UID string
		}
		Questions []struct {
			ID int32
		}
	}
	require.NoError(t, json.Unmarshal(genRec.Body.Bytes(), &generated))

	t.Run("ScoresSubmission", func(t *testing.T) {
		body := fmt.Sprintf(`{"answers": [{"questionId": %d, "answer": " PANE "}]}`, generated.Questions[0].ID)
		rec := doRequest(e, http.MethodPost, "/api/v1/quizzes/"+generated.Quiz.UID+"/attempts", "1", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Attempt struct {
				Score          float64
				CorrectAnswers int
			}
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, 1.0, payload.Attempt.Score)
		assert.Equal(t, 1, payload.Attempt.CorrectAnswers)
	})

	t.Run("UnknownQuizIs404", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/quizzes/nope/attempts", "1", `{"answers": []}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestComplexityEndpoint(t *testing.T) {
	e, _ := newTestServer(t, &fixedLLM{
		response: `{"complexity": "easy", "score": 0.2, "suggestions": []}`,
	})

	t.Run("Success", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/complexity", "1", `{"text": "Hola."}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var payload struct {
			Complexity string `json:"complexity"`
			Score      float64 `json:"score"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "easy", payload.Complexity)
	})

	t.Run("EmptyTextIs400", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/complexity", "1", `{"text": ""}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHealthEndpoint(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		e, _ := newTestServer(t, &fixedLLM{response: "ok"})
		rec := doRequest(e, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("EmptyBackendResponseIsUnavailable", func(t *testing.T) {
		e, _ := newTestServer(t, &fixedLLM{response: ""})
		rec := doRequest(e, http.MethodGet, "/healthz", "", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}
