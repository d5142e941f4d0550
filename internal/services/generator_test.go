package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

func factsWithReadme(content string) *models.RepositoryFacts {
	return &models.RepositoryFacts{
		FullName:       "alice/proj",
		Name:           "proj",
		Owner:          "alice",
		ExistingReadme: &content,
	}
}

func TestGenerateKeepsLongExistingReadme(t *testing.T) {
	// Nothing detected beyond the README itself, so there is no material
	// to improve it with and it is kept verbatim.
	existing := strings.Repeat("# proj\n\nA real readme with substance.\n", 5)
	svc := NewGeneratorService(new(MockAIProvider), DefaultThresholds())

	doc := svc.Generate(context.Background(), factsWithReadme(existing))

	assert.Equal(t, models.SignalExistingKept, doc.Signal)
	assert.Equal(t, existing, doc.Content)
}

func TestGenerateRegeneratesWhenEvidencePresent(t *testing.T) {
	existing := strings.Repeat("# proj\n\nA real readme with substance.\n", 5)
	facts := factsWithReadme(existing)
	facts.Dependencies = []string{"flask"}
	facts.Frameworks = []string{"Flask"}

	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "A real readme with substance.")
	}), mock.Anything).
		Return("# proj\n\nA refreshed readme long enough to pass the quality gate easily.", nil)

	svc := NewGeneratorService(ai, DefaultThresholds())
	doc := svc.Generate(context.Background(), facts)

	assert.Equal(t, models.SignalLLMFresh, doc.Signal)
	ai.AssertExpectations(t)
}

func TestGenerateRegeneratesShortReadme(t *testing.T) {
	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("# proj\n\nA generated readme long enough to pass the quality gate easily.", nil)

	svc := NewGeneratorService(ai, DefaultThresholds())
	doc := svc.Generate(context.Background(), factsWithReadme("# proj"))

	assert.Equal(t, models.SignalLLMFresh, doc.Signal)
	ai.AssertExpectations(t)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("```markdown\n# proj\n\nA generated readme long enough to pass the quality gate.\n```", nil)

	svc := NewGeneratorService(ai, DefaultThresholds())
	doc := svc.Generate(context.Background(), &models.RepositoryFacts{Name: "proj"})

	assert.Equal(t, models.SignalLLMFresh, doc.Signal)
	assert.True(t, strings.HasPrefix(doc.Content, "# proj"))
	assert.False(t, strings.Contains(doc.Content, "```"))
}

func TestGenerateFallsBackOnModelError(t *testing.T) {
	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("timeout"))

	svc := NewGeneratorService(ai, DefaultThresholds())
	doc := svc.Generate(context.Background(), &models.RepositoryFacts{Name: "proj", FullName: "alice/proj"})

	assert.Equal(t, models.SignalFallbackTemplate, doc.Signal)
	assert.True(t, strings.HasPrefix(doc.Content, "# proj"))
}

func TestGenerateQualityGate(t *testing.T) {
	longEnough := strings.Repeat("word ", 20)

	cases := []struct {
		name   string
		output string
		reject bool
	}{
		{"too short", "# x", true},
		{"many unknowns", longEnough + strings.Repeat("unknown ", 6), true},
		{"many n/a", longEnough + strings.Repeat("N/A ", 4), true},
		{"insert placeholder", longEnough + "[Insert description here]", true},
		{"todo placeholder", longEnough + "[TODO: fill in]", true},
		{"few unknowns pass", longEnough + "unknown unknown", false},
		{"clean output passes", "# proj\n\n" + longEnough, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ai := new(MockAIProvider)
			ai.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(tc.output, nil)

			svc := NewGeneratorService(ai, DefaultThresholds())
			doc := svc.Generate(context.Background(), &models.RepositoryFacts{Name: "proj"})

			if tc.reject {
				assert.Equal(t, models.SignalFallbackTemplate, doc.Signal)
			} else {
				assert.Equal(t, models.SignalLLMFresh, doc.Signal)
			}
		})
	}
}

func TestRenderFallbackSections(t *testing.T) {
	facts := &models.RepositoryFacts{
		FullName:        "alice/proj",
		Name:            "proj",
		Description:     "Does a thing",
		Owner:           "alice",
		Topics:          []string{"cli", "automation"},
		PrimaryLanguage: "Python",
		Languages:       map[string]float64{"Python": 100},
		Frameworks:      []string{"Flask"},
		Dependencies:    []string{"flask"},
		Structure:       []models.DirEntry{file("app.py"), file("LICENSE"), dir("tests")},
		HasTests:        true,
	}

	content := renderFallback(facts)

	assert.True(t, strings.HasPrefix(content, "# proj"))
	assert.Contains(t, content, "Does a thing")
	assert.Contains(t, content, "`cli` `automation`")
	assert.Contains(t, content, "## ✨ Features")
	assert.Contains(t, content, "## 🛠️ Tech Stack")
	assert.Contains(t, content, "pip install -r requirements.txt")
	assert.Contains(t, content, "python main.py")
	assert.Contains(t, content, "[@alice](https://github.com/alice)")
	assert.Contains(t, content, "## 📄 License")
}

func TestRenderFallbackOmitsEmptySections(t *testing.T) {
	content := renderFallback(&models.RepositoryFacts{FullName: "alice/empty", Name: "empty"})

	assert.True(t, strings.HasPrefix(content, "# empty"))
	assert.NotContains(t, content, "## 🚀 Installation")
	assert.NotContains(t, content, "## 📄 License")
	assert.NotContains(t, content, "## 🛠️ Tech Stack")
	assert.NotContains(t, content, "## ✨ Features")
}

func TestRenderFallbackInstallNeedsDependencies(t *testing.T) {
	facts := &models.RepositoryFacts{
		Name:            "proj",
		FullName:        "alice/proj",
		PrimaryLanguage: "Python",
	}

	content := renderFallback(facts)

	assert.NotContains(t, content, "## 🚀 Installation")
	assert.Contains(t, content, "## 💻 Usage")
}

func TestRefine(t *testing.T) {
	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "add badges")
	}), mock.Anything).Return("# proj\n\nNow with badges.", nil)

	svc := NewGeneratorService(ai, DefaultThresholds())
	refined, err := svc.Refine(context.Background(), "# proj", "add badges")

	require.NoError(t, err)
	assert.Equal(t, "# proj\n\nNow with badges.", refined)
}

func TestRefineEmptyResponseFails(t *testing.T) {
	ai := new(MockAIProvider)
	ai.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("   ", nil)

	svc := NewGeneratorService(ai, DefaultThresholds())
	_, err := svc.Refine(context.Background(), "# proj", "feedback")

	assert.Error(t, err)
}
