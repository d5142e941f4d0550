package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
)

// Prompt builders are pure functions of the fact sheet so they can be
// tested without a model. Context lines are emitted only for facts that
// are present: a missing fact is skipped, never rendered as "Unknown".

// mainFileCandidates lists, per primary language, the files worth quoting
// as a code sample in the insight prompt.
var mainFileCandidates = map[string][]string{
	"Python":     {"app.py", "main.py", "__init__.py"},
	"JavaScript": {"index.js", "app.js", "main.js"},
	"TypeScript": {"index.ts", "app.ts", "main.ts"},
	"Go":         {"main.go"},
	"Rust":       {"main.rs", "lib.rs"},
	"Java":       {"Main.java", "App.java"},
}

// installCommands and runCommands back the Installation and Usage sections
// of the fallback template. The keys cover the same ecosystems the
// dependency detector knows about.
var installCommands = map[string]string{
	"Python":     "pip install -r requirements.txt",
	"JavaScript": "npm install",
	"TypeScript": "npm install",
	"Ruby":       "bundle install",
	"Go":         "go mod download",
	"Rust":       "cargo build",
	"Java":       "mvn install",
}

var runCommands = map[string]string{
	"Python":     "python main.py",
	"JavaScript": "npm start",
	"TypeScript": "npm start",
	"Ruby":       "ruby main.rb",
	"Go":         "go run .",
	"Rust":       "cargo run",
	"Java":       "mvn exec:java",
}

// buildInsightPrompt asks the model for project-level judgments, strictly
// from visible evidence, as a bare JSON object.
func buildInsightPrompt(facts *models.RepositoryFacts, fileContents map[string]string, th Thresholds) string {
	var info []string

	if facts.Name != "" {
		info = append(info, fmt.Sprintf("**Project Name**: %s", facts.Name))
	}
	if facts.Description != "" {
		info = append(info, fmt.Sprintf("**Description**: %s", facts.Description))
	}
	if facts.PrimaryLanguage != "" && facts.PrimaryLanguage != "Unknown" {
		info = append(info, fmt.Sprintf("**Language**: %s", facts.PrimaryLanguage))
	}
	if len(facts.Dependencies) > 0 {
		info = append(info, fmt.Sprintf("**Dependencies**: %s", strings.Join(capList(facts.Dependencies, 10), ", ")))
	}
	if len(facts.Frameworks) > 0 {
		info = append(info, fmt.Sprintf("**Frameworks**: %s", strings.Join(facts.Frameworks, ", ")))
	}

	infoBlock := "Limited project information available."
	if len(info) > 0 {
		infoBlock = strings.Join(info, "\n")
	}

	structureSummary := summarizeStructure(facts.Structure)
	if structureSummary == "" {
		structureSummary = "Minimal structure"
	}

	var b strings.Builder
	b.WriteString("Analyze this software project and provide insights. Be realistic - if there's limited information, say so honestly.\n\n")
	b.WriteString(infoBlock)
	b.WriteString("\n\n**Directory Structure**:\n")
	b.WriteString(structureSummary)
	b.WriteString("\n")

	if snippet := mainFileSnippet(fileContents, facts.PrimaryLanguage, th.SnippetChars); snippet != "" {
		b.WriteString("\n**Code Sample**:\n```\n")
		b.WriteString(snippet)
		b.WriteString("\n```\n")
	}

	if readme := facts.ExistingReadmeText(); readme != "" {
		b.WriteString("\n**Existing README**:\n")
		b.WriteString(truncate(readme, th.ReadmeContextChars))
		b.WriteString("\n")
	}

	b.WriteString(`
Based on what you can actually see, respond with ONLY a JSON object:
{
    "project_type": "type based on evidence or empty string if unclear",
    "main_purpose": "what this does based on actual evidence, or empty if unclear",
    "key_features": ["only features you can actually infer"],
    "target_audience": "who would use this based on evidence",
    "complexity": "beginner/intermediate/advanced based on code"
}

IMPORTANT: Do not make things up. If you can't determine something, use empty string or empty array.`)

	return b.String()
}

// buildGenerationPrompt produces the README generation prompt. Only facts
// that exist contribute context lines, and the section list adapts to the
// available evidence so the model is never invited to invent content.
func buildGenerationPrompt(facts *models.RepositoryFacts, th Thresholds) string {
	var context []string

	if facts.Name != "" {
		context = append(context, fmt.Sprintf("**Repository**: %s", facts.Name))
	}
	if facts.Owner != "" {
		context = append(context, fmt.Sprintf("**Author**: %s", facts.Owner))
	}
	if facts.Description != "" {
		context = append(context, fmt.Sprintf("**Description**: %s", facts.Description))
	}

	var insight models.Insight
	if facts.Insight != nil {
		insight = *facts.Insight
	}
	if insight.MainPurpose != "" && insight.MainPurpose != facts.Description {
		context = append(context, fmt.Sprintf("**Purpose**: %s", insight.MainPurpose))
	}
	if insight.ProjectType != "" {
		context = append(context, fmt.Sprintf("**Project Type**: %s", insight.ProjectType))
	}
	if insight.TargetAudience != "" {
		context = append(context, fmt.Sprintf("**Target Users**: %s", insight.TargetAudience))
	}
	if len(facts.Languages) > 0 {
		context = append(context, fmt.Sprintf("**Languages**: %s", strings.Join(capList(languageNames(facts.Languages), 5), ", ")))
	}
	if facts.PrimaryLanguage != "" && facts.PrimaryLanguage != "Unknown" && len(facts.Languages) == 0 {
		context = append(context, fmt.Sprintf("**Primary Language**: %s", facts.PrimaryLanguage))
	}
	if len(facts.Frameworks) > 0 {
		context = append(context, fmt.Sprintf("**Frameworks**: %s", strings.Join(capList(facts.Frameworks, 5), ", ")))
	}
	if len(facts.Dependencies) > 0 {
		context = append(context, fmt.Sprintf("**Dependencies**: %s", strings.Join(capList(facts.Dependencies, 8), ", ")))
	}
	if len(insight.KeyFeatures) > 0 {
		context = append(context, fmt.Sprintf("**Key Features Detected**: %s", strings.Join(capList(insight.KeyFeatures, 5), ", ")))
	}

	contextBlock := "**WARNING**: Very limited information available."
	if len(context) > 0 {
		contextBlock = strings.Join(context, "\n")
	}

	sections := applicableSections(facts, insight)

	var b strings.Builder
	b.WriteString("You are writing a README for a PERSONAL GitHub repository (not a company/team project).\n\n")
	b.WriteString(contextBlock)
	b.WriteString("\n\n**Directory Structure**:\n```\n")
	b.WriteString(formatDirectoryTree(facts.Structure, th.MaxStructureItems))
	b.WriteString("\n```\n")

	if readme := facts.ExistingReadmeText(); readme != "" {
		b.WriteString("\n**Existing README (reference - improve if you can, but it might already be good)**:\n")
		b.WriteString(truncate(readme, th.PromptReadmeChars))
		b.WriteString("\n")
	}

	b.WriteString(`
**CRITICAL RULES - FOLLOW EXACTLY**:
1. NEVER use "Unknown", "N/A", "[Insert...]", "[TODO]" - if you don't know, SKIP that part entirely
2. NEVER use corporate language like "our team", "we", "passionate", "revolutionary" for personal repos
3. NEVER make up features, frameworks, or technologies not explicitly mentioned
4. NEVER include License section unless there's a LICENSE file in the structure
5. NEVER include Installation section if there are no dependencies or build steps
6. DO use simple, direct language (this is ONE person's repo, not a team)
7. DO skip any section you can't fill with real information
8. DO keep it minimal and honest - better to have 3 good sections than 10 vague ones
9. DO use existing README content as a reference if it's already good
`)

	if facts.Owner != "" {
		b.WriteString(fmt.Sprintf("\n**Tone**: Simple, direct, personal. Write as if YOU are %s explaining your own project.\n", facts.Owner))
	} else {
		b.WriteString("\n**Tone**: Simple, direct, personal.\n")
	}

	b.WriteString("\n**Sections to consider** (ONLY include if you have real content):\n")
	for _, s := range sections {
		b.WriteString("- " + s + "\n")
	}

	if !hasEnoughInfo(facts, insight) && facts.ExistingReadme != nil {
		b.WriteString("\n**NOTE**: This repository has limited detectable information. The existing README may be better. Consider keeping it if it's already good.\n")
	}

	b.WriteString("\nGenerate the README now. Keep it SHORT and REAL. No fluff, no corporate speak, no placeholders.")

	return b.String()
}

func applicableSections(facts *models.RepositoryFacts, insight models.Insight) []string {
	sections := []string{"# Title (just the project name)"}

	if facts.Description != "" || insight.MainPurpose != "" {
		sections = append(sections, "## Description (brief and honest)")
	}
	if len(insight.KeyFeatures) > 0 || len(facts.Frameworks) > 0 || knownLanguage(facts.PrimaryLanguage) {
		sections = append(sections, "## Features (ONLY list real, detectable features)")
	}
	if len(facts.Languages) > 0 || len(facts.Frameworks) > 0 {
		sections = append(sections, "## Tech Stack (table with ONLY known technologies)")
	}
	if len(facts.Structure) > 1 {
		sections = append(sections, "## Project Structure")
	}
	if knownLanguage(facts.PrimaryLanguage) && len(facts.Dependencies) > 0 {
		sections = append(sections, "## Installation (ONLY if there are dependencies to install)")
	}
	if knownLanguage(facts.PrimaryLanguage) && (len(insight.KeyFeatures) > 0 || len(facts.Frameworks) > 0) {
		sections = append(sections, "## Usage (ONLY if you can infer how it's used)")
	}
	if facts.HasLicenseFile() {
		sections = append(sections, "## License (a LICENSE file exists)")
	}
	if facts.Owner != "" {
		sections = append(sections, "## Author")
	}

	return sections
}

func hasEnoughInfo(facts *models.RepositoryFacts, insight models.Insight) bool {
	return facts.Description != "" || insight.MainPurpose != "" ||
		len(insight.KeyFeatures) > 0 || len(facts.Frameworks) > 0 || len(facts.Dependencies) > 0
}

// buildReviewPrompt asks for a corrective pass over an already generated
// document: formatting, tone, code-block hints, and removal of any section
// that has no real content.
func buildReviewPrompt(content string, facts *models.RepositoryFacts, th Thresholds) string {
	frameworks := "None"
	if len(facts.Frameworks) > 0 {
		frameworks = strings.Join(facts.Frameworks, ", ")
	}

	lang := facts.PrimaryLanguage
	if lang == "" {
		lang = "Unknown"
	}

	return fmt.Sprintf(`You are a senior technical writer reviewing a README.md file.

**Project**: %s
**Language**: %s
**Frameworks**: %s

**README to Review**:
`+"```markdown\n%s\n```"+`

**Your Task**: Improve this README by:
1. Fixing any formatting issues (proper markdown)
2. Making descriptions more engaging and clear
3. Ensuring code blocks have correct language hints
4. Making sure installation steps are accurate for %s
5. Deleting any section that has no real content or still contains placeholder or corporate language
6. Ensuring a direct, personal tone throughout

Output ONLY the improved README, no explanations or comments.`,
		facts.Name, lang, frameworks, truncate(content, th.ReviewContentChars), lang)
}

// buildRefinePrompt folds free-form user feedback into an existing README.
func buildRefinePrompt(currentReadme, feedback string) string {
	return fmt.Sprintf(`You are a technical writer improving a README.md based on feedback.

## Current README:
%s

## User Feedback:
%s

## Instructions:
Update the README to address the feedback while maintaining good structure.
Return only the complete updated README.md content.

Updated README:`, currentReadme, feedback)
}

// summarizeStructure renders a compact listing for the insight prompt:
// up to 10 directories then up to 10 files, one per line.
func summarizeStructure(structure []models.DirEntry) string {
	var dirs, files []string
	for _, e := range structure {
		if e.IsDir() {
			if len(dirs) < 10 {
				dirs = append(dirs, e.Name+"/")
			}
		} else if len(files) < 10 {
			files = append(files, e.Name)
		}
	}
	return strings.Join(append(dirs, files...), "\n")
}

// mainFileSnippet picks the most representative file content available:
// a language-appropriate entry file, then the README, then anything.
func mainFileSnippet(fileContents map[string]string, language string, maxChars int) string {
	candidates := append(append([]string{}, mainFileCandidates[language]...), "README.md")

	for _, name := range candidates {
		if content, ok := fileContents[name]; ok && content != "" {
			return truncate(content, maxChars)
		}
	}

	names := make([]string, 0, len(fileContents))
	for name := range fileContents {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if content := fileContents[name]; content != "" {
			return truncate(content, maxChars)
		}
	}

	return ""
}

// formatDirectoryTree renders the structure as a tree: directories first,
// alphabetical within each group, capped with a "+N more" line.
func formatDirectoryTree(structure []models.DirEntry, maxItems int) string {
	if len(structure) == 0 {
		return "No structure available"
	}

	var dirs, files []models.DirEntry
	for _, e := range structure {
		if e.IsDir() {
			dirs = append(dirs, e)
		} else {
			files = append(files, e)
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	all := append(dirs, files...)
	shown := all
	if len(shown) > maxItems {
		shown = shown[:maxItems]
	}

	lines := make([]string, 0, len(shown)+1)
	for i, e := range shown {
		prefix := "├── "
		if i == len(all)-1 {
			prefix = "└── "
		}
		name := e.Name
		if e.IsDir() {
			name += "/"
		}
		lines = append(lines, prefix+name)
	}

	if len(all) > maxItems {
		lines = append(lines, fmt.Sprintf("└── ... and %d more items", len(all)-maxItems))
	}

	return strings.Join(lines, "\n")
}

func languageNames(languages map[string]float64) []string {
	names := make([]string, 0, len(languages))
	for name := range languages {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if languages[names[i]] != languages[names[j]] {
			return languages[names[i]] > languages[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func knownLanguage(lang string) bool {
	return lang != "" && lang != "Unknown"
}

func capList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	return items[:max]
}

func truncate(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	return s[:maxChars]
}
