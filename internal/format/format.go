// Package format renders a GenerationResponse as the plain-text report shown
// in the output view and saved as questions.txt.
package format

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pavelanni/qgen/internal/model"
)

const (
	headerRuleWidth  = 60
	sectionRuleWidth = 32
)

var upper = cases.Upper(language.Und)

// Upper upper-cases a language name the way the report header does.
func Upper(s string) string {
	return upper.String(s)
}

// Questions formats resp into a multi-section report. It never fails: every
// absent or empty part of the response is simply skipped.
func Questions(resp *model.GenerationResponse) string {
	var lines []string
	add := func(s ...string) { lines = append(lines, s...) }
	section := func(title string) { add(title, strings.Repeat("-", sectionRuleWidth)) }

	lang := "UNKNOWN"
	if resp != nil && resp.Language != "" {
		lang = Upper(resp.Language)
	}
	add("LANGUAGE: "+lang, strings.Repeat("=", headerRuleWidth), "")

	if resp == nil {
		return strings.Join(lines, "\n")
	}

	if q := resp.Questions; q != nil {
		if len(q.Cloze) > 0 {
			section("CLOZE")
			for i, c := range q.Cloze {
				add(fmt.Sprintf("%d. %s", i+1, c.Question), "   Answer: "+c.Answer, "")
			}
		}
		if len(q.ShortAnswer) > 0 {
			section("SHORT ANSWER")
			for i, s := range q.ShortAnswer {
				add(fmt.Sprintf("%d. %s", i+1, s.Question), "")
			}
		}
		if len(q.MCQ) > 0 {
			section("MULTIPLE CHOICE")
			for i, m := range q.MCQ {
				add(fmt.Sprintf("%d. %s", i+1, m.Question))
				for j, c := range m.Choices {
					add(fmt.Sprintf("   %c. %s", rune('A'+j), c))
				}
				add("   Correct: "+m.Answer, "")
			}
		}
	}

	if len(resp.Evaluation) > 0 {
		section("EVALUATION")
		for _, kv := range resp.Evaluation {
			add(kv.Name + ": " + Percent(kv.Value) + "%")
		}
		add("")
	}

	if len(resp.Counts) > 0 {
		section("COUNTS")
		for _, kv := range resp.Counts {
			add(kv.Name + ": " + strconv.Itoa(kv.Value))
		}
	}

	return strings.Join(lines, "\n")
}

// Percent renders a fraction as a percentage with exactly one decimal.
// Ties on the exact binary value round up, so 0.8675 gives "86.8".
func Percent(fraction float64) string {
	x := fraction * 100
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 1, 64)
	}

	// x*10 is exact at this precision; floor(x*10 + 0.5) picks the larger
	// neighbour on an exact tie.
	v := new(big.Float).SetPrec(256).SetFloat64(x)
	v.Mul(v, big.NewFloat(10))
	v.Add(v, big.NewFloat(0.5))
	n, _ := v.Int(nil)
	if v.Sign() < 0 && !v.IsInt() {
		n.Sub(n, big.NewInt(1))
	}

	neg := n.Sign() < 0
	n.Abs(n)
	q, r := new(big.Int).QuoRem(n, big.NewInt(10), new(big.Int))
	s := q.String() + "." + r.String()
	if neg {
		s = "-" + s
	}
	return s
}
