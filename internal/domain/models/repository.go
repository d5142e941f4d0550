package models

import (
	"strings"
	"time"
)

// RepoSummary is the repository metadata returned by the code host when
// listing or fetching a single repository.
type RepoSummary struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	UpdatedAt     time.Time `json:"updated_at"`
	HTMLURL       string    `json:"html_url"`
	DefaultBranch string    `json:"default_branch"`
	Topics        []string  `json:"topics"`
	Private       bool      `json:"private"`
	Size          int       `json:"size"`
	OpenIssues    int       `json:"open_issues"`
	HasReadme     bool      `json:"has_readme"`
}

// DirEntry is a single entry of a repository directory listing.
type DirEntry struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"` // "file" or "dir"
	Size int    `json:"size"`
}

func (e DirEntry) IsDir() bool {
	return e.Type == "dir"
}

// Insight holds LLM-derived judgments about a project. Every field is
// optional: a field is only set when the model produced a non-empty value,
// so consumers can trust that whatever is present was actually inferred.
type Insight struct {
	ProjectType    string   `json:"project_type,omitempty"`
	MainPurpose    string   `json:"main_purpose,omitempty"`
	KeyFeatures    []string `json:"key_features,omitempty"`
	TargetAudience string   `json:"target_audience,omitempty"`
	Complexity     string   `json:"complexity,omitempty"`
}

// Empty reports whether no field of the insight was populated.
func (i Insight) Empty() bool {
	return i.ProjectType == "" && i.MainPurpose == "" &&
		len(i.KeyFeatures) == 0 && i.TargetAudience == "" && i.Complexity == ""
}

// RepositoryFacts is the immutable fact sheet assembled once per repository
// per run. Unknown facts are represented as absent (nil pointer, empty
// slice), never as placeholder strings.
type RepositoryFacts struct {
	FullName      string
	Name          string
	Description   string
	Topics        []string
	Stars         int
	DefaultBranch string
	Owner         string

	// Languages maps language name to percentage of bytes, one decimal.
	Languages       map[string]float64
	PrimaryLanguage string

	Structure    []DirEntry
	Dependencies []string
	Frameworks   []string

	HasTests  bool
	HasCI     bool
	HasDocker bool
	HasDocs   bool

	// ExistingReadme is nil when no README was found. The distinction
	// between "none" and "present but short" matters downstream.
	ExistingReadme *string

	Insight *Insight
}

// ExistingReadmeText returns the existing README content, or "" if absent.
func (f *RepositoryFacts) ExistingReadmeText() string {
	if f.ExistingReadme == nil {
		return ""
	}
	return *f.ExistingReadme
}

// HasLicenseFile reports whether the structure listing contains an entry
// whose name starts with LICENSE (any casing).
func (f *RepositoryFacts) HasLicenseFile() bool {
	for _, e := range f.Structure {
		if strings.HasPrefix(strings.ToUpper(e.Name), "LICENSE") {
			return true
		}
	}
	return false
}
