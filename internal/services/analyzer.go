package services

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// AnalyzerService turns a repository snapshot into a RepositoryFacts sheet.
// Everything except the insight is deterministic: same input, same facts.
// The AI provider is optional; with a nil provider the insight is skipped.
type AnalyzerService struct {
	ai ports.AIProvider
	th Thresholds
}

func NewAnalyzerService(ai ports.AIProvider, th Thresholds) *AnalyzerService {
	return &AnalyzerService{ai: ai, th: th}
}

var errNoJSONObject = errors.New("no JSON object in response")

var requirementLine = regexp.MustCompile(`^([a-zA-Z0-9_\-\.]+)`)
var gemLine = regexp.MustCompile(`gem\s+['"]([^'"]+)['"]`)

var pythonFrameworks = map[string]string{
	"flask":        "Flask",
	"django":       "Django",
	"fastapi":      "FastAPI",
	"streamlit":    "Streamlit",
	"pytest":       "pytest",
	"numpy":        "NumPy",
	"pandas":       "Pandas",
	"tensorflow":   "TensorFlow",
	"torch":        "PyTorch",
	"scikit-learn": "scikit-learn",
	"sklearn":      "scikit-learn",
}

var jsFrameworks = map[string]string{
	"react":   "React",
	"vue":     "Vue.js",
	"angular": "Angular",
	"next":    "Next.js",
	"express": "Express",
	"nestjs":  "NestJS",
	"@nestjs": "NestJS",
	"gatsby":  "Gatsby",
	"svelte":  "Svelte",
}

var testDirNames = map[string]bool{
	"test": true, "tests": true, "spec": true, "specs": true, "__tests__": true,
}

var ciMarkers = map[string]bool{
	".github": true, ".gitlab-ci.yml": true, ".travis.yml": true,
	"azure-pipelines.yml": true, ".circleci": true, "Jenkinsfile": true,
}

var dockerFiles = map[string]bool{
	"dockerfile": true, "docker-compose.yml": true, "docker-compose.yaml": true,
}

var docsDirNames = map[string]bool{
	"docs": true, "doc": true, "documentation": true,
}

func (s *AnalyzerService) Analyze(ctx context.Context, in ports.AnalyzerInput) *models.RepositoryFacts {
	facts := &models.RepositoryFacts{
		FullName:      in.Repo.FullName,
		Name:          in.Repo.Name,
		Description:   in.Repo.Description,
		Topics:        in.Repo.Topics,
		Stars:         in.Repo.Stars,
		DefaultBranch: in.Repo.DefaultBranch,
		Owner:         in.Owner,
		Structure:     in.Structure,
	}

	facts.Languages, facts.PrimaryLanguage = processLanguages(in.Languages)
	facts.Dependencies = s.detectDependencies(in.Structure, in.FileContents)
	facts.Frameworks = detectFrameworks(facts.Dependencies, in.Structure)

	facts.HasTests = hasAnyDir(in.Structure, testDirNames)
	facts.HasCI = hasCIMarker(in.Structure)
	facts.HasDocker = hasDockerFile(in.Structure)
	facts.HasDocs = hasAnyDir(in.Structure, docsDirNames)

	if readme, ok := in.FileContents["README.md"]; ok {
		facts.ExistingReadme = &readme
	}

	if s.ai != nil {
		facts.Insight = s.extractInsight(ctx, facts, in.FileContents)
	}

	return facts
}

// processLanguages converts byte counts into percentages (one decimal) and
// picks the dominant language. Ties break alphabetically so the result is
// stable; an empty mapping yields the Unknown sentinel.
func processLanguages(byteCounts map[string]int) (map[string]float64, string) {
	total := 0
	for _, n := range byteCounts {
		total += n
	}
	if total == 0 {
		return nil, "Unknown"
	}

	percentages := make(map[string]float64, len(byteCounts))
	primary := ""
	for name, n := range byteCounts {
		percentages[name] = float64(int(float64(n)/float64(total)*1000+0.5)) / 10
		if primary == "" || byteCounts[name] > byteCounts[primary] ||
			(byteCounts[name] == byteCounts[primary] && name < primary) {
			primary = name
		}
	}
	return percentages, primary
}

// detectDependencies merges what the manifests reveal. Marker files that
// cannot be parsed meaningfully contribute their toolchain name instead of
// individual packages.
func (s *AnalyzerService) detectDependencies(structure []models.DirEntry, files map[string]string) []string {
	names := make(map[string]bool, len(structure))
	for _, e := range structure {
		names[e.Name] = true
	}

	var deps []string

	if content, ok := files["requirements.txt"]; ok {
		deps = append(deps, s.parseRequirements(content)...)
	}
	if names["Pipfile"] {
		deps = append(deps, "pipenv")
	}
	if content, ok := files["pyproject.toml"]; ok && strings.Contains(strings.ToLower(content), "poetry") {
		deps = append(deps, "poetry")
	}
	if content, ok := files["package.json"]; ok {
		deps = append(deps, s.parsePackageJSON(content)...)
	}
	if content, ok := files["Gemfile"]; ok {
		deps = append(deps, s.parseGemfile(content)...)
	}
	if names["go.mod"] {
		deps = append(deps, "Go modules")
	}
	if names["pom.xml"] {
		deps = append(deps, "Maven")
	}
	if names["build.gradle"] || names["build.gradle.kts"] {
		deps = append(deps, "Gradle")
	}
	if names["Cargo.toml"] {
		deps = append(deps, "Cargo")
	}

	deduped := dedupe(deps)
	if len(deduped) > s.th.MaxDependencies {
		deduped = deduped[:s.th.MaxDependencies]
	}
	return deduped
}

func (s *AnalyzerService) parseRequirements(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		// Option lines (-r, -e, --index-url, ...) are pip directives, not
		// packages.
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		if m := requirementLine.FindStringSubmatch(line); m != nil {
			deps = append(deps, m[1])
			if len(deps) == s.th.MaxFileDeps {
				break
			}
		}
	}
	return deps
}

func (s *AnalyzerService) parsePackageJSON(content string) []string {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(content), &manifest); err != nil {
		return nil
	}

	deps := sortedKeys(manifest.Dependencies)
	if len(deps) > s.th.MaxRuntimeDeps {
		deps = deps[:s.th.MaxRuntimeDeps]
	}
	dev := sortedKeys(manifest.DevDependencies)
	if len(dev) > s.th.MaxDevDeps {
		dev = dev[:s.th.MaxDevDeps]
	}
	return append(deps, dev...)
}

func (s *AnalyzerService) parseGemfile(content string) []string {
	var deps []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "gem ") {
			continue
		}
		if m := gemLine.FindStringSubmatch(line); m != nil {
			deps = append(deps, m[1])
			if len(deps) == s.th.MaxFileDeps {
				break
			}
		}
	}
	return deps
}

// detectFrameworks maps dependency names to framework labels by substring
// match, then adds Docker if the structure carries a Docker file.
func detectFrameworks(dependencies []string, structure []models.DirEntry) []string {
	var frameworks []string
	for _, dep := range dependencies {
		lowered := strings.ToLower(dep)
		for needle, label := range pythonFrameworks {
			if strings.Contains(lowered, needle) {
				frameworks = append(frameworks, label)
			}
		}
		for needle, label := range jsFrameworks {
			if strings.Contains(lowered, needle) {
				frameworks = append(frameworks, label)
			}
		}
	}

	if hasDockerFile(structure) {
		frameworks = append(frameworks, "Docker")
	}

	deduped := dedupe(frameworks)
	sort.Strings(deduped)
	return deduped
}

func hasAnyDir(structure []models.DirEntry, names map[string]bool) bool {
	for _, e := range structure {
		if e.IsDir() && names[strings.ToLower(e.Name)] {
			return true
		}
	}
	return false
}

func hasCIMarker(structure []models.DirEntry) bool {
	for _, e := range structure {
		if ciMarkers[e.Name] {
			return true
		}
	}
	return false
}

func hasDockerFile(structure []models.DirEntry) bool {
	for _, e := range structure {
		if !e.IsDir() && dockerFiles[strings.ToLower(e.Name)] {
			return true
		}
	}
	return false
}

// extractInsight asks the model for project judgments. Any failure is
// absorbed: a repo with no insight still produces a valid fact sheet.
func (s *AnalyzerService) extractInsight(ctx context.Context, facts *models.RepositoryFacts, fileContents map[string]string) *models.Insight {
	prompt := buildInsightPrompt(facts, fileContents, s.th)

	raw, err := s.ai.Generate(ctx, prompt, ports.GenerateOptions{Temperature: 0.2, MaxTokens: 500})
	if err != nil {
		logger.Warn(ctx, "insight extraction failed", "repo", facts.FullName, "error", err)
		return nil
	}

	insight, err := parseInsight(raw)
	if err != nil {
		logger.Warn(ctx, "insight response not parseable", "repo", facts.FullName, "error", err)
		return nil
	}
	if insight == nil || insight.Empty() {
		return nil
	}
	return insight
}

// parseInsight extracts the JSON object from a possibly fenced, possibly
// chatty model response and keeps only non-empty fields.
func parseInsight(raw string) (*models.Insight, error) {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, errNoJSONObject
	}

	var payload struct {
		ProjectType    string   `json:"project_type"`
		MainPurpose    string   `json:"main_purpose"`
		KeyFeatures    []string `json:"key_features"`
		TargetAudience string   `json:"target_audience"`
		Complexity     string   `json:"complexity"`
	}
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payload); err != nil {
		return nil, err
	}

	insight := &models.Insight{
		ProjectType:    strings.TrimSpace(payload.ProjectType),
		MainPurpose:    strings.TrimSpace(payload.MainPurpose),
		TargetAudience: strings.TrimSpace(payload.TargetAudience),
		Complexity:     strings.TrimSpace(payload.Complexity),
	}
	for _, f := range payload.KeyFeatures {
		if f = strings.TrimSpace(f); f != "" {
			insight.KeyFeatures = append(insight.KeyFeatures, f)
		}
	}
	return insight, nil
}

// stripCodeFences removes a surrounding markdown fence, with or without a
// language hint, and trims whitespace.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	for _, prefix := range []string{"```json", "```markdown", "```md", "```"} {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
