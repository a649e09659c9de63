package i18n

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func initLang(t *testing.T, lang string) context.Context {
	t.Helper()
	if err := Init(lang); err != nil {
		t.Fatalf("Init(%q): %v", lang, err)
	}
	return Context(context.Background(), lang)
}

func TestStatusMessages(t *testing.T) {
	ctx := initLang(t, "en")

	for id, want := range map[string]string{
		"StatusIdle":       "Idle",
		"StatusGenerating": "Generating",
		"StatusDone":       "Done",
		"StatusCopyFailed": "Copy Failed",
		"NeedText":         "Please add input text.",
	} {
		if got := T(ctx, id); got != want {
			t.Errorf("T(%s) = %q, want %q", id, got, want)
		}
	}
}

func TestUnknownLanguageFallsBackToEnglish(t *testing.T) {
	ctx := initLang(t, "de")

	if got := T(ctx, "StatusDone"); got != "Done" {
		t.Errorf("T(StatusDone) = %q, want 'Done'", got)
	}
	if got := Td(ctx, "ErrorOutput", map[string]any{"Message": "boom"}); got != "Error: boom" {
		t.Errorf("Td(ErrorOutput) = %q, want 'Error: boom'", got)
	}
	// Without a localizer in the context the configured language applies.
	if got := T(context.Background(), "StatusError"); got != "Error" {
		t.Errorf("T(StatusError) = %q, want 'Error'", got)
	}
}

func TestContextWithoutLocalizerUsesConfiguredLanguage(t *testing.T) {
	initLang(t, "ru")

	if got := T(context.Background(), "StatusIdle"); got != "Ожидание" {
		t.Errorf("T(StatusIdle) = %q, want 'Ожидание'", got)
	}
}

func TestTemplateData(t *testing.T) {
	ctx := initLang(t, "en")

	got := Td(ctx, "ErrorOutput", map[string]any{"Message": "502"})
	if got != "Error: 502" {
		t.Errorf("Td(ErrorOutput) = %q, want 'Error: 502'", got)
	}

	got = Td(ctx, "LanguageBadge", map[string]any{"Language": "EN"})
	if got != "Language: EN" {
		t.Errorf("Td(LanguageBadge) = %q, want 'Language: EN'", got)
	}
}

func TestPlural(t *testing.T) {
	ctx := initLang(t, "en")

	if got := Tp(ctx, "QuestionsGenerated", 1); got != "1 question generated" {
		t.Errorf("Tp(1) = %q", got)
	}
	if got := Tp(ctx, "QuestionsGenerated", 4); got != "4 questions generated" {
		t.Errorf("Tp(4) = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	ctx := initLang(t, "en")

	if got := T(ctx, "NonExistentKey"); got != "NonExistentKey" {
		t.Errorf("T(NonExistentKey) = %q, want 'NonExistentKey'", got)
	}
}

func TestContextWithoutLocalizer(t *testing.T) {
	initLang(t, "en")

	if got := T(context.Background(), "StatusIdle"); got != "Idle" {
		t.Errorf("T(StatusIdle) = %q, want 'Idle'", got)
	}
}

func TestMiddleware(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "StubNoText")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-CH, fr;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "No text provided" {
		t.Errorf("StubNoText = %q, want 'No text provided'", got)
	}
}

func TestRussianCatalog(t *testing.T) {
	ctx := initLang(t, "ru")

	if got := T(ctx, "StatusDone"); got != "Готово" {
		t.Errorf("T(StatusDone) = %q, want 'Готово'", got)
	}
	for count, want := range map[int]string{
		1:  "Создан 1 вопрос",
		3:  "Создано 3 вопроса",
		5:  "Создано 5 вопросов",
		21: "Создан 21 вопрос",
	} {
		if got := Tp(ctx, "QuestionsGenerated", count); got != want {
			t.Errorf("Tp(%d) = %q, want %q", count, got, want)
		}
	}
}

func TestMiddlewarePrefersHeader(t *testing.T) {
	initLang(t, "en")

	var got string
	h := Middleware("en")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = T(r.Context(), "StubNoText")
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "ru-RU, ru;q=0.9, en;q=0.5")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got != "Текст не передан" {
		t.Errorf("StubNoText = %q, want 'Текст не передан'", got)
	}
}
