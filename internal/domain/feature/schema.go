package feature

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"resume-analyzer/internal/domain/skill"
)

const (
	EducationLevel  = "education_level"
	ExperienceCount = "experience_count"
	ProjectCount    = "project_count"
)

// Schema is the fixed column layout of a feature vector: one column per
// lexicon phrase in lexicon order, then the three derived scalars.
type Schema struct {
	names       []string
	index       map[string]int
	fingerprint string
}

func NewSchema(lex skill.Lexicon) *Schema {
	names := make([]string, 0, lex.Total()+3)
	for _, c := range lex.Categories() {
		for _, p := range lex.Phrases(c) {
			names = append(names, ColumnName(c, p))
		}
	}
	names = append(names, EducationLevel, ExperienceCount, ProjectCount)

	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}

	sum := sha256.Sum256([]byte(strings.Join(names, "\x00")))
	return &Schema{
		names:       names,
		index:       index,
		fingerprint: hex.EncodeToString(sum[:8]),
	}
}

// ColumnName returns "{category}_{phrase}" with spaces in the phrase replaced
// by underscores.
func ColumnName(c skill.Category, phrase string) string {
	return string(c) + "_" + strings.ReplaceAll(phrase, " ", "_")
}

func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}

func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Schema) Index(name string) (int, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[name]
	return i, ok
}

// Fingerprint identifies the ordered column names. Two schemas with the same
// fingerprint produce column-compatible vectors.
func (s *Schema) Fingerprint() string {
	if s == nil {
		return ""
	}
	return s.fingerprint
}
