// Package stub serves a fixture-backed POST /api/generate that follows the
// backend contract. It is meant for offline development and tests; it does
// not generate anything.
package stub

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pavelanni/qgen/internal/client"
	"github.com/pavelanni/qgen/internal/format"
	"github.com/pavelanni/qgen/internal/i18n"
	"github.com/pavelanni/qgen/internal/model"
)

//go:embed sample.json
var sampleFixture []byte

// DefaultNumQuestions is used when a request omits num_questions.
const DefaultNumQuestions = 5

// Handler answers generate requests from a fixed response.
type Handler struct {
	fixture model.GenerationResponse
}

// New creates a Handler serving fixture.
func New(fixture model.GenerationResponse) *Handler {
	return &Handler{fixture: fixture}
}

// LoadFixture reads a GenerationResponse from path. An empty path yields the
// built-in sample.
func LoadFixture(path string) (model.GenerationResponse, error) {
	data := sampleFixture
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return model.GenerationResponse{}, fmt.Errorf("read fixture: %w", err)
		}
	}
	var resp model.GenerationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return model.GenerationResponse{}, fmt.Errorf("parse fixture %q: %w", path, err)
	}
	return resp, nil
}

// Router returns a chi router with request logging, panic recovery and
// message localization in front of the stub endpoint.
func (h *Handler) Router(lang string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(i18n.Middleware(lang))
	h.Routes(r)
	return r
}

// Routes registers the stub endpoint.
func (h *Handler) Routes(r chi.Router) {
	r.Post(client.GeneratePath, h.handleGenerate)
}

// generateRequest mirrors model.GenerationRequest with optional fields so
// that omitted values get the backend's defaults.
type generateRequest struct {
	Text         string         `json:"text"`
	Targets      []model.Target `json:"targets"`
	NumQuestions *int           `json:"num_questions"`
	LanguageHint *string        `json:"language_hint"`
	OutputFormat string         `json:"output_format"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("stub: bad request body", "error", err)
		writeError(w, http.StatusBadRequest, i18n.T(r.Context(), "StubBadRequest"))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, i18n.T(r.Context(), "StubNoText"))
		return
	}
	if req.Targets == nil {
		req.Targets = []model.Target{model.TargetMCQ, model.TargetCloze, model.TargetShortAnswer}
	}
	n := DefaultNumQuestions
	if req.NumQuestions != nil {
		n = *req.NumQuestions
	}

	out := h.build(req.Targets, n, req.LanguageHint)
	slog.Info("stub: generated",
		"targets", req.Targets,
		"num_questions", n,
		"output_format", req.OutputFormat,
		"counts", out.Counts,
	)

	if strings.EqualFold(req.OutputFormat, string(model.FormatText)) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(format.Questions(&out)))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// build picks at most n fixture questions per requested type, in the order
// cloze, short answer, multiple choice.
func (h *Handler) build(targets []model.Target, n int, hint *string) model.GenerationResponse {
	want := func(t model.Target) bool {
		for _, x := range targets {
			if x == t {
				return true
			}
		}
		return false
	}
	fq := h.fixture.Questions
	if fq == nil {
		fq = &model.QuestionSet{}
	}

	out := model.GenerationResponse{
		Language:   h.fixture.Language,
		Questions:  &model.QuestionSet{},
		Counts:     model.Pairs[int]{},
		Evaluation: h.fixture.Evaluation,
	}
	if hint != nil && *hint != "" {
		out.Language = *hint
	}

	if want(model.TargetCloze) {
		out.Questions.Cloze = limit(fq.Cloze, n)
		out.Counts = append(out.Counts, model.Pair[int]{Name: string(model.TargetCloze), Value: len(out.Questions.Cloze)})
	}
	if want(model.TargetShortAnswer) {
		out.Questions.ShortAnswer = limit(fq.ShortAnswer, n)
		out.Counts = append(out.Counts, model.Pair[int]{Name: string(model.TargetShortAnswer), Value: len(out.Questions.ShortAnswer)})
	}
	if want(model.TargetMCQ) {
		out.Questions.MCQ = limit(fq.MCQ, n)
		out.Counts = append(out.Counts, model.Pair[int]{Name: string(model.TargetMCQ), Value: len(out.Questions.MCQ)})
	}
	return out
}

func limit[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) > n {
		items = items[:n]
	}
	return append([]T{}, items...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("stub: encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
