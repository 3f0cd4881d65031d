package feature

import (
	"regexp"
	"strings"

	"resume-analyzer/internal/domain/skill"
)

var educationTerms = []string{"bachelor", "master", "phd", "diploma"}

var (
	experienceRe = regexp.MustCompile(`\b(year|years|month|months)\b`)
	projectRe    = regexp.MustCompile(`\b(project|projects)\b`)
)

// Vector is a feature vector laid out by its Schema.
type Vector struct {
	schema *Schema
	values []int
}

func (v Vector) Schema() *Schema { return v.schema }

func (v Vector) Len() int { return len(v.values) }

func (v Vector) Values() []int {
	out := make([]int, len(v.values))
	copy(out, v.values)
	return out
}

func (v Vector) Float64s() []float64 {
	out := make([]float64, len(v.values))
	for i, x := range v.values {
		out[i] = float64(x)
	}
	return out
}

// Get returns the count for a named column, or 0 when the column is unknown.
func (v Vector) Get(name string) int {
	i, ok := v.schema.Index(name)
	if !ok || i >= len(v.values) {
		return 0
	}
	return v.values[i]
}

func (v Vector) EducationLevel() int  { return v.Get(EducationLevel) }
func (v Vector) ExperienceCount() int { return v.Get(ExperienceCount) }
func (v Vector) ProjectCount() int    { return v.Get(ProjectCount) }

type phraseMatcher struct {
	category skill.Category
	phrase   string
	re       *regexp.Regexp
}

// Extractor counts lexicon phrases in normalized text. Matchers are compiled
// once and are safe for concurrent use.
type Extractor struct {
	lexicon  skill.Lexicon
	schema   *Schema
	matchers []phraseMatcher
}

func NewExtractor(lex skill.Lexicon) *Extractor {
	e := &Extractor{lexicon: lex, schema: NewSchema(lex)}
	for _, c := range lex.Categories() {
		for _, p := range lex.Phrases(c) {
			e.matchers = append(e.matchers, phraseMatcher{
				category: c,
				phrase:   p,
				re:       regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`),
			})
		}
	}
	return e
}

func (e *Extractor) Schema() *Schema { return e.schema }

func (e *Extractor) Lexicon() skill.Lexicon { return e.lexicon }

// Extract builds the feature vector for text, which is expected to be
// normalized already.
func (e *Extractor) Extract(text string) Vector {
	values := make([]int, e.schema.Len())
	for i, m := range e.matchers {
		values[i] = len(m.re.FindAllStringIndex(text, -1))
	}

	n := len(e.matchers)
	education := 0
	for _, term := range educationTerms {
		education += strings.Count(text, term)
	}
	values[n] = education
	values[n+1] = len(experienceRe.FindAllStringIndex(text, -1))
	values[n+2] = len(projectRe.FindAllStringIndex(text, -1))

	return Vector{schema: e.schema, values: values}
}

// Present returns the phrases of category c that occur at least once in text,
// in lexicon order.
func (e *Extractor) Present(text string, c skill.Category) []string {
	out := make([]string, 0)
	for _, m := range e.matchers {
		if m.category != c {
			continue
		}
		if m.re.MatchString(text) {
			out = append(out, m.phrase)
		}
	}
	return out
}
