package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// GeneratorService produces the README document for a fact sheet. A long
// enough existing README is kept untouched when the analysis found nothing
// to improve it with; otherwise the model is asked once and its output must
// pass the quality gate, or the deterministic fallback template takes over.
// The service never returns an error: every fact sheet yields a document,
// the signal says how it was obtained.
type GeneratorService struct {
	ai ports.AIProvider
	th Thresholds
}

func NewGeneratorService(ai ports.AIProvider, th Thresholds) *GeneratorService {
	return &GeneratorService{ai: ai, th: th}
}

func (s *GeneratorService) Generate(ctx context.Context, facts *models.RepositoryFacts) models.GeneratedDocument {
	// With dependencies or frameworks detected there is material to improve
	// the README with, so regeneration wins and the existing text only
	// feeds the prompt as reference.
	existing := strings.TrimSpace(facts.ExistingReadmeText())
	if len(existing) >= s.th.MinKeepReadmeChars &&
		len(facts.Dependencies) == 0 && len(facts.Frameworks) == 0 {
		logger.Debug(ctx, "keeping existing README", "repo", facts.FullName, "chars", len(existing))
		return models.GeneratedDocument{
			Content: facts.ExistingReadmeText(),
			Signal:  models.SignalExistingKept,
		}
	}

	prompt := buildGenerationPrompt(facts, s.th)
	raw, err := s.ai.Generate(ctx, prompt, ports.GenerateOptions{Temperature: 0.7, MaxTokens: 2048})
	if err != nil {
		logger.Warn(ctx, "generation failed, using template", "repo", facts.FullName, "error", err)
		return s.fallback(facts)
	}

	content := stripCodeFences(raw)
	if reason := s.lowQualityReason(content); reason != "" {
		logger.Warn(ctx, "generated README rejected, using template", "repo", facts.FullName, "reason", reason)
		return s.fallback(facts)
	}

	return models.GeneratedDocument{Content: content, Signal: models.SignalLLMFresh}
}

// Refine folds free-form feedback into an existing README. Unlike
// Generate this can fail: without a usable model response there is
// nothing sensible to fall back to.
func (s *GeneratorService) Refine(ctx context.Context, currentReadme, feedback string) (string, error) {
	prompt := buildRefinePrompt(currentReadme, feedback)
	raw, err := s.ai.Generate(ctx, prompt, ports.GenerateOptions{Temperature: 0.7, MaxTokens: 2048})
	if err != nil {
		return "", fmt.Errorf("refining README: %w", err)
	}

	refined := stripCodeFences(raw)
	if strings.TrimSpace(refined) == "" {
		return "", fmt.Errorf("refining README: model returned empty content")
	}
	return refined, nil
}

// lowQualityReason checks the generated text against the quality gate.
// Any single red flag rejects the document.
func (s *GeneratorService) lowQualityReason(content string) string {
	trimmed := strings.TrimSpace(content)
	lowered := strings.ToLower(trimmed)

	switch {
	case len(trimmed) < s.th.MinGeneratedChars:
		return "too short"
	case strings.Count(lowered, "unknown") >= s.th.MaxUnknownTokens:
		return "too many unknowns"
	case strings.Count(lowered, "n/a") >= s.th.MaxNATokens:
		return "too many n/a"
	case strings.Contains(lowered, "[insert"), strings.Contains(lowered, "[todo"):
		return "placeholder text"
	}
	return ""
}

func (s *GeneratorService) fallback(facts *models.RepositoryFacts) models.GeneratedDocument {
	return models.GeneratedDocument{
		Content: renderFallback(facts),
		Signal:  models.SignalFallbackTemplate,
	}
}

// renderFallback builds a minimal honest README from detected facts alone.
// Sections without real content are omitted.
func renderFallback(facts *models.RepositoryFacts) string {
	var b strings.Builder

	title := facts.Name
	if title == "" {
		title = facts.FullName
	}
	b.WriteString("# " + title + "\n\n")

	if facts.Description != "" {
		b.WriteString(facts.Description + "\n\n")
	}

	if len(facts.Topics) > 0 {
		topics := capList(facts.Topics, 5)
		badges := make([]string, len(topics))
		for i, t := range topics {
			badges[i] = "`" + t + "`"
		}
		b.WriteString(strings.Join(badges, " ") + "\n\n")
	}

	if features := fallbackFeatures(facts); len(features) > 0 {
		b.WriteString("## ✨ Features\n\n")
		for _, f := range features {
			b.WriteString("- " + f + "\n")
		}
		b.WriteString("\n")
	}

	if len(facts.Languages) > 0 || len(facts.Frameworks) > 0 {
		b.WriteString("## 🛠️ Tech Stack\n\n")
		b.WriteString("| Category | Technologies |\n|----------|--------------|\n")
		if len(facts.Languages) > 0 {
			b.WriteString("| Languages | " + strings.Join(capList(languageNames(facts.Languages), 5), ", ") + " |\n")
		}
		if len(facts.Frameworks) > 0 {
			b.WriteString("| Frameworks & Tools | " + strings.Join(facts.Frameworks, ", ") + " |\n")
		}
		b.WriteString("\n")
	}

	if len(facts.Structure) > 1 {
		b.WriteString("## 📁 Project Structure\n\n```\n")
		b.WriteString(formatDirectoryTree(facts.Structure, 15))
		b.WriteString("\n```\n\n")
	}

	install, hasInstall := installCommands[facts.PrimaryLanguage]
	if hasInstall && len(facts.Dependencies) > 0 {
		b.WriteString("## 🚀 Installation\n\n```bash\n")
		fmt.Fprintf(&b, "git clone https://github.com/%s.git\n", facts.FullName)
		fmt.Fprintf(&b, "cd %s\n", facts.Name)
		b.WriteString(install + "\n```\n\n")
	}

	if run, ok := runCommands[facts.PrimaryLanguage]; ok {
		b.WriteString("## 💻 Usage\n\n```bash\n" + run + "\n```\n\n")
	}

	b.WriteString("## 🤝 Contributing\n\nContributions are welcome. Feel free to open an issue or submit a pull request.\n\n")

	if facts.Owner != "" {
		b.WriteString("## 👤 Author\n\n")
		fmt.Fprintf(&b, "**%s**\n\n- GitHub: [@%s](https://github.com/%s)\n\n", facts.Owner, facts.Owner, facts.Owner)
	}

	if facts.HasLicenseFile() {
		b.WriteString("## 📄 License\n\nSee the [LICENSE](LICENSE) file for details.\n\n")
	}

	b.WriteString("---\n\n*This README was generated automatically from the repository structure.*\n")

	return b.String()
}

func fallbackFeatures(facts *models.RepositoryFacts) []string {
	var features []string
	if knownLanguage(facts.PrimaryLanguage) {
		features = append(features, fmt.Sprintf("Written in %s", facts.PrimaryLanguage))
	}
	for _, fw := range facts.Frameworks {
		features = append(features, fmt.Sprintf("Built with %s", fw))
	}
	if facts.HasTests {
		features = append(features, "Includes a test suite")
	}
	if facts.HasCI {
		features = append(features, "Continuous integration configured")
	}
	if facts.HasDocker {
		features = append(features, "Docker support")
	}
	if facts.HasDocs {
		features = append(features, "Documentation included")
	}
	return features
}
