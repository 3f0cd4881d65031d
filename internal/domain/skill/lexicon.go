package skill

import "strings"

type Category string

const (
	CategoryTechnical Category = "technical"
	CategorySoft      Category = "soft"
)

type Entry struct {
	Category Category
	Phrases  []string
}

// Lexicon is an immutable, ordered catalog of recognized skill phrases.
// Iteration order is the order categories were given to New, and phrase order
// within a category is preserved.
type Lexicon struct {
	categories []Category
	phrases    map[Category][]string
}

func New(entries ...Entry) Lexicon {
	l := Lexicon{
		categories: make([]Category, 0, len(entries)),
		phrases:    make(map[Category][]string, len(entries)),
	}
	for _, e := range entries {
		c := Category(strings.TrimSpace(string(e.Category)))
		if c == "" {
			continue
		}
		if _, ok := l.phrases[c]; !ok {
			l.categories = append(l.categories, c)
		}
		for _, p := range e.Phrases {
			p = strings.ToLower(strings.TrimSpace(p))
			if p == "" {
				continue
			}
			l.phrases[c] = append(l.phrases[c], p)
		}
		if l.phrases[c] == nil {
			l.phrases[c] = []string{}
		}
	}
	return l
}

func Default() Lexicon {
	return New(
		Entry{
			Category: CategoryTechnical,
			Phrases: []string{
				"python", "java", "c++", "javascript", "html", "css", "sql",
				"aws", "docker", "kubernetes", "machine learning", "react",
				"angular", "node.js", "git", "agile", "devops",
			},
		},
		Entry{
			Category: CategorySoft,
			Phrases: []string{
				"leadership", "communication", "teamwork", "problem solving",
				"analytical", "project management", "time management",
			},
		},
	)
}

func (l Lexicon) Categories() []Category {
	out := make([]Category, len(l.categories))
	copy(out, l.categories)
	return out
}

func (l Lexicon) Phrases(c Category) []string {
	src := l.phrases[c]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func (l Lexicon) Size(c Category) int {
	return len(l.phrases[c])
}

func (l Lexicon) Total() int {
	n := 0
	for _, c := range l.categories {
		n += len(l.phrases[c])
	}
	return n
}
