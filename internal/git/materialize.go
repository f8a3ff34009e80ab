package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Service materializes remote repositories under a shared base directory.
// There is no locking: two concurrent Materialize calls for the same URL race
// on the same working copy.
type Service struct {
	basePath string
}

func NewService(basePath string) *Service {
	return &Service{basePath: basePath}
}

// Materialize ensures an up-to-date local working copy of the remote exists
// and returns its path. A missing directory is cloned, an existing one is
// pulled. Every failure is reported through the error return; the path is
// never non-empty on failure.
func (s *Service) Materialize(ctx context.Context, url string) (string, error) {
	repoPath := filepath.Join(s.basePath, RepoName(url))

	if _, err := os.Stat(filepath.Join(repoPath, ".git")); err == nil {
		if err := s.pull(ctx, repoPath); err != nil {
			return "", err
		}
		return repoPath, nil
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create repos directory: %w", err)
	}

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, repoPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git clone failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	return repoPath, nil
}

func (s *Service) pull(ctx context.Context, repoPath string) error {
	cmd := exec.CommandContext(ctx, "git", "pull", "--ff-only")
	cmd.Dir = repoPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git pull failed: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// HeadCommit returns the commit hash the working copy is at.
func (s *Service) HeadCommit(ctx context.Context, repoPath string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "HEAD")
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get commit hash: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// RepoName derives the stable local directory name from a repository URL:
// the final path segment with any trailing .git stripped.
func RepoName(url string) string {
	url = strings.TrimSuffix(url, ".git")
	url = strings.TrimSuffix(url, "/")

	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		parts := strings.Split(url, "/")
		return parts[len(parts)-1]
	}

	// SSH form: git@github.com:owner/repo
	if strings.Contains(url, ":") {
		parts := strings.Split(url, ":")
		pathParts := strings.Split(parts[len(parts)-1], "/")
		return pathParts[len(pathParts)-1]
	}

	return url
}
