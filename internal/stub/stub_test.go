package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavelanni/qgen/internal/client"
	"github.com/pavelanni/qgen/internal/i18n"
	"github.com/pavelanni/qgen/internal/model"
)

func TestMain(m *testing.M) {
	if err := i18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	fixture, err := LoadFixture("")
	require.NoError(t, err)
	srv := httptest.NewServer(New(fixture).Router("en"))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateJSONFiltersAndLimits(t *testing.T) {
	srv := newServer(t)
	hint := "es"

	res, err := client.New(srv.URL, nil).Generate(context.Background(), model.GenerationRequest{
		Text:         "Some passage.",
		Targets:      []model.Target{model.TargetMCQ, model.TargetCloze},
		NumQuestions: 1,
		LanguageHint: &hint,
		OutputFormat: model.FormatJSON,
	})
	require.NoError(t, err)
	resp := res.Response
	require.NotNil(t, resp)
	require.NotNil(t, resp.Questions)

	assert.Equal(t, "es", resp.Language)
	assert.Len(t, resp.Questions.Cloze, 1)
	assert.Len(t, resp.Questions.MCQ, 1)
	assert.Empty(t, resp.Questions.ShortAnswer)
	assert.Equal(t, model.Pairs[int]{{Name: "cloze", Value: 1}, {Name: "mcq", Value: 1}}, resp.Counts)
	require.Len(t, resp.Evaluation, 3)
	assert.Equal(t, "fluency", resp.Evaluation[0].Name)
}

func TestGenerateText(t *testing.T) {
	srv := newServer(t)

	res, err := client.New(srv.URL, nil).Generate(context.Background(), model.GenerationRequest{
		Text:         "Some passage.",
		Targets:      []model.Target{model.TargetMCQ},
		NumQuestions: 5,
		OutputFormat: model.FormatText,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Text, "LANGUAGE: EN\n"))
	assert.Contains(t, res.Text, "   A. Paris")
	assert.Contains(t, res.Text, "relevance: 86.8%")
	assert.Contains(t, res.Text, "mcq: 2")
}

func TestBlankTextIsRejected(t *testing.T) {
	srv := newServer(t)

	_, err := client.New(srv.URL, nil).Generate(context.Background(), model.GenerationRequest{
		Text:         "   ",
		Targets:      []model.Target{model.TargetMCQ},
		NumQuestions: 5,
		OutputFormat: model.FormatJSON,
	})
	require.Error(t, err)
	var se *client.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Code)
	assert.JSONEq(t, `{"error":"No text provided"}`, se.Body)
}

func TestDefaultsWhenFieldsOmitted(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+client.GeneratePath, "application/json", strings.NewReader(`{"text":"x"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestMalformedBody(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+client.GeneratePath, "application/json", strings.NewReader(`{`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBuildDefaults(t *testing.T) {
	fixture, err := LoadFixture("")
	require.NoError(t, err)
	out := New(fixture).build([]model.Target{model.TargetShortAnswer, model.TargetCloze, model.TargetMCQ}, DefaultNumQuestions, nil)

	assert.Equal(t, "en", out.Language)
	assert.Equal(t, []string{"cloze", "short_answer", "mcq"}, names(out.Counts))
	assert.Len(t, out.Questions.Cloze, 3)
	assert.Len(t, out.Questions.ShortAnswer, 2)
}

func TestLoadFixtureFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"language":"de","questions":{"cloze":[{"question":"q","answer":"a"}]}}`), 0o644))

	fixture, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, "de", fixture.Language)

	_, err = LoadFixture(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func names(p model.Pairs[int]) []string {
	var out []string
	for _, kv := range p {
		out = append(out, kv.Name)
	}
	return out
}
