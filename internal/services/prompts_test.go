package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

func TestFormatDirectoryTree(t *testing.T) {
	structure := []models.DirEntry{
		file("zeta.py"), dir("src"), file("README.md"), dir("docs"),
	}

	tree := formatDirectoryTree(structure, 20)
	lines := strings.Split(tree, "\n")

	assert.Equal(t, []string{
		"├── docs/",
		"├── src/",
		"├── README.md",
		"└── zeta.py",
	}, lines)
}

func TestFormatDirectoryTreeCapped(t *testing.T) {
	var structure []models.DirEntry
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		structure = append(structure, file(n))
	}

	tree := formatDirectoryTree(structure, 3)

	assert.Contains(t, tree, "└── ... and 2 more items")
	assert.NotContains(t, tree, "├── d")
}

func TestFormatDirectoryTreeEmpty(t *testing.T) {
	assert.Equal(t, "No structure available", formatDirectoryTree(nil, 20))
}

func TestMainFileSnippetPrefersEntryFile(t *testing.T) {
	contents := map[string]string{
		"README.md": "readme text",
		"main.py":   "print('hi')",
	}

	assert.Equal(t, "print('hi')", mainFileSnippet(contents, "Python", 800))
	assert.Equal(t, "readme text", mainFileSnippet(contents, "Rust", 800))
}

func TestMainFileSnippetTruncates(t *testing.T) {
	contents := map[string]string{"main.go": strings.Repeat("x", 1000)}
	assert.Len(t, mainFileSnippet(contents, "Go", 800), 800)
}

func TestBuildGenerationPromptSkipsMissingFacts(t *testing.T) {
	prompt := buildGenerationPrompt(&models.RepositoryFacts{Name: "proj"}, DefaultThresholds())

	assert.Contains(t, prompt, "**Repository**: proj")
	assert.NotContains(t, prompt, "**Description**")
	assert.NotContains(t, prompt, "**Frameworks**")
	assert.NotContains(t, prompt, "## Installation")
	assert.Contains(t, prompt, "NEVER use \"Unknown\"")
}

func TestBuildGenerationPromptSections(t *testing.T) {
	facts := &models.RepositoryFacts{
		Name:            "proj",
		Owner:           "alice",
		Description:     "Does a thing",
		PrimaryLanguage: "Python",
		Dependencies:    []string{"flask"},
		Frameworks:      []string{"Flask"},
		Structure:       []models.DirEntry{file("app.py"), file("LICENSE")},
	}

	prompt := buildGenerationPrompt(facts, DefaultThresholds())

	assert.Contains(t, prompt, "## Installation")
	assert.Contains(t, prompt, "## License")
	assert.Contains(t, prompt, "if YOU are alice")
}

func TestBuildInsightPromptMinimalRepo(t *testing.T) {
	prompt := buildInsightPrompt(&models.RepositoryFacts{}, nil, DefaultThresholds())

	assert.Contains(t, prompt, "Limited project information available.")
	assert.Contains(t, prompt, "Minimal structure")
	assert.Contains(t, prompt, "ONLY a JSON object")
}

func TestBuildReviewPromptEmbedsContent(t *testing.T) {
	facts := &models.RepositoryFacts{Name: "proj", PrimaryLanguage: "Go"}
	prompt := buildReviewPrompt("# proj\n\nBody.", facts, DefaultThresholds())

	assert.Contains(t, prompt, "# proj\n\nBody.")
	assert.Contains(t, prompt, "**Language**: Go")
	assert.Contains(t, prompt, "Output ONLY the improved README")
}
