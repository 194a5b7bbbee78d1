package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidReposFile indicates the repository seed file could not be used.
var ErrInvalidReposFile = errors.New("invalid repositories file")

// RepositoryEntry is one repository in the seed file.
type RepositoryEntry struct {
	Name            string            `yaml:"name"`
	Path            string            `yaml:"path"`
	URLPattern      string            `yaml:"url_pattern"`
	DefaultRevision string            `yaml:"default_revision"`
	Revisions       []string          `yaml:"revisions"`
	Metadata        map[string]string `yaml:"metadata"`
}

// Pattern returns the external link pattern. An explicit url_pattern wins,
// then metadata.url_pattern, then a pattern derived from metadata.github,
// which may be "owner/repo" or a full URL.
func (e RepositoryEntry) Pattern() string {
	if e.URLPattern != "" {
		return e.URLPattern
	}
	if p := e.Metadata["url_pattern"]; p != "" {
		return p
	}
	gh := e.Metadata["github"]
	if gh == "" {
		return ""
	}
	base := gh
	if _, err := url.ParseRequestURI(gh); err != nil {
		base = "https://github.com/" + gh
	}
	return strings.TrimRight(base, "/") + "/blob/{version}/{path}#L{lno}"
}

// Revision returns the default revision: default_revision, else the first
// listed revision, else empty.
func (e RepositoryEntry) Revision() string {
	if e.DefaultRevision != "" {
		return e.DefaultRevision
	}
	if len(e.Revisions) > 0 {
		return e.Revisions[0]
	}
	return ""
}

type reposFile struct {
	Repositories []RepositoryEntry `yaml:"repositories"`
}

// LoadRepositories reads a seed file. The file is YAML; JSON index configs
// with a top-level "repositories" list parse the same way.
func LoadRepositories(path string) ([]RepositoryEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read repositories file: %w", err)
	}
	return ParseRepositories(data)
}

// ParseRepositories decodes seed file content.
func ParseRepositories(data []byte) ([]RepositoryEntry, error) {
	var f reposFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReposFile, err)
	}
	for i, r := range f.Repositories {
		if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Path) == "" {
			return nil, fmt.Errorf("%w: entry %d needs a name and a path", ErrInvalidReposFile, i)
		}
	}
	return f.Repositories, nil
}
