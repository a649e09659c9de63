package model

// Target is a question type the backend can generate.
type Target string

const (
	TargetMCQ         Target = "mcq"
	TargetCloze       Target = "cloze"
	TargetShortAnswer Target = "short_answer"
)

// OutputFormat selects how the backend renders its answer.
type OutputFormat string

const (
	// FormatText asks for a ready-made plain-text report.
	FormatText OutputFormat = "text"
	// FormatJSON asks for a GenerationResponse document.
	FormatJSON OutputFormat = "json"
)

// Valid reports whether f is one of the known formats.
func (f OutputFormat) Valid() bool {
	return f == FormatText || f == FormatJSON
}

// GenerationRequest is the body of POST /api/generate.
type GenerationRequest struct {
	Text         string       `json:"text"`
	Targets      []Target     `json:"targets"`
	NumQuestions int          `json:"num_questions"`
	LanguageHint *string      `json:"language_hint"`
	OutputFormat OutputFormat `json:"output_format"`
}

// ClozeQuestion is a fill-in-the-blank item.
type ClozeQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ShortAnswerQuestion carries no answer on purpose.
type ShortAnswerQuestion struct {
	Question string `json:"question"`
}

// MCQQuestion is a multiple-choice item.
type MCQQuestion struct {
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
}

// QuestionSet groups generated questions by type. Any group may be absent.
type QuestionSet struct {
	Cloze       []ClozeQuestion       `json:"cloze,omitempty"`
	ShortAnswer []ShortAnswerQuestion `json:"short_answer,omitempty"`
	MCQ         []MCQQuestion         `json:"mcq,omitempty"`
}

// Len reports the total number of questions. A nil set is empty.
func (q *QuestionSet) Len() int {
	if q == nil {
		return 0
	}
	return len(q.Cloze) + len(q.ShortAnswer) + len(q.MCQ)
}

// GenerationResponse is the structured (json) answer of the backend.
// Every field is optional: an empty Language, a nil Questions and nil
// Evaluation or Counts all mean "absent".
type GenerationResponse struct {
	Language   string         `json:"language,omitempty"`
	Questions  *QuestionSet   `json:"questions,omitempty"`
	Evaluation Pairs[float64] `json:"evaluation,omitempty"`
	Counts     Pairs[int]     `json:"counts,omitempty"`
}

// Theme is the persisted light/dark display preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeKey is the preference key the theme is stored under.
const ThemeKey = "theme"

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Glyph is the label of the toggle control: a sun while dark is active
// (switch to light), a moon otherwise.
func (t Theme) Glyph() string {
	if t == ThemeDark {
		return "☀️"
	}
	return "🌙"
}
