package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CategoryOrder(t *testing.T) {
	l := Default()
	require.Equal(t, []Category{CategoryTechnical, CategorySoft}, l.Categories())
	assert.Equal(t, 17, l.Size(CategoryTechnical))
	assert.Equal(t, 7, l.Size(CategorySoft))
	assert.Equal(t, 24, l.Total())
}

func TestDefault_PhraseOrderPreserved(t *testing.T) {
	tech := Default().Phrases(CategoryTechnical)
	require.NotEmpty(t, tech)
	assert.Equal(t, "python", tech[0])
	assert.Equal(t, "devops", tech[len(tech)-1])
	assert.Contains(t, tech, "machine learning")
}

func TestPhrases_ReturnsCopy(t *testing.T) {
	l := Default()
	p := l.Phrases(CategorySoft)
	p[0] = "mutated"
	assert.Equal(t, "leadership", l.Phrases(CategorySoft)[0])
}

func TestNew_MergesRepeatedCategoryAndSkipsBlank(t *testing.T) {
	l := New(
		Entry{Category: "tools", Phrases: []string{" Git ", ""}},
		Entry{Category: "", Phrases: []string{"ignored"}},
		Entry{Category: "tools", Phrases: []string{"jira"}},
	)
	assert.Equal(t, []Category{"tools"}, l.Categories())
	assert.Equal(t, []string{"git", "jira"}, l.Phrases("tools"))
	assert.Equal(t, 0, l.Size("missing"))
}
