package services

import (
	"context"
	"sort"
	"strings"

	"github.com/mutabay/readme-agent/internal/domain/models"
	"github.com/mutabay/readme-agent/internal/domain/ports"
	"github.com/mutabay/readme-agent/internal/logger"
)

// RepoFilter narrows and orders the repository listing. Zero values mean
// "no filtering".
type RepoFilter struct {
	Language      string // case-insensitive match on the primary language
	Name          string // case-insensitive substring match on the repo name
	Sort          string // "updated" (default), "stars" or "name"
	Limit         int    // 0 keeps everything
	MissingReadme bool   // keep only repositories without a README.md
}

// RepoStats summarizes a repository listing.
type RepoStats struct {
	Total      int
	Public     int
	Private    int
	TotalStars int
}

// DiscoveryService lists the user's repositories with filtering, sorting
// and summary statistics for the CLI.
type DiscoveryService struct {
	host ports.CodeHost
}

func NewDiscoveryService(host ports.CodeHost) *DiscoveryService {
	return &DiscoveryService{host: host}
}

func (s *DiscoveryService) User(ctx context.Context) (models.User, error) {
	return s.host.GetAuthenticatedUser(ctx)
}

func (s *DiscoveryService) ListRepositories(ctx context.Context, filter RepoFilter) ([]models.RepoSummary, error) {
	repos, err := s.host.ListRepositories(ctx)
	if err != nil {
		return nil, err
	}

	out := matchFilter(repos, filter)
	if filter.MissingReadme {
		out = s.withoutReadme(ctx, out)
	}
	return sortAndLimit(out, filter), nil
}

// withoutReadme probes each repository for a root README.md and keeps the
// ones that lack it. A repo whose probe fails is dropped: it cannot be
// confirmed as missing one.
func (s *DiscoveryService) withoutReadme(ctx context.Context, repos []models.RepoSummary) []models.RepoSummary {
	out := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		_, found, err := s.host.GetFileContent(ctx, r.FullName, "README.md", "")
		if err != nil {
			logger.Warn(ctx, "could not probe for README", "repo", r.FullName, "error", err)
			continue
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}

func matchFilter(repos []models.RepoSummary, filter RepoFilter) []models.RepoSummary {
	out := make([]models.RepoSummary, 0, len(repos))
	for _, r := range repos {
		if filter.Language != "" && !strings.EqualFold(r.Language, filter.Language) {
			continue
		}
		if filter.Name != "" && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(filter.Name)) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func sortAndLimit(out []models.RepoSummary, filter RepoFilter) []models.RepoSummary {
	switch filter.Sort {
	case "stars":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	case "name":
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	}

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

func Summarize(repos []models.RepoSummary) RepoStats {
	stats := RepoStats{Total: len(repos)}
	for _, r := range repos {
		if r.Private {
			stats.Private++
		} else {
			stats.Public++
		}
		stats.TotalStars += r.Stars
	}
	return stats
}
