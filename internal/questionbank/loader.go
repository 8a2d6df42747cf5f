package questionbank

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/cognilevel/internal/cognition"
)

// SupportedMajor is the bank file format major version this loader reads.
const SupportedMajor = "v1"

// ErrUnsupportedBankVersion is returned for bank files with a missing,
// malformed or incompatible version.
var ErrUnsupportedBankVersion = errors.New("unsupported question bank version")

// File is the on-disk layout of a question bank file.
type File struct {
	Version string       `yaml:"version"`
	Domains []DomainFile `yaml:"domains"`
}

// DomainFile lists the questions of one domain.
type DomainFile struct {
	ID        string               `yaml:"id"`
	Questions []cognition.Question `yaml:"questions"`
}

// LoadFile parses a YAML bank file and adds its questions to r. It returns
// the number of questions added. Loading stops at the first invalid question.
func (r *Repository) LoadFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read bank file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("parse bank file %s: %w", path, err)
	}

	if err := checkVersion(f.Version); err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	added := 0
	for _, d := range f.Domains {
		if d.ID == "" {
			return added, fmt.Errorf("%s: domain without id", path)
		}
		r.ensureDomain(d.ID)
		for _, q := range d.Questions {
			if err := r.AddQuestion(d.ID, q); err != nil {
				return added, fmt.Errorf("%s: %w", path, err)
			}
			added++
		}
	}
	return added, nil
}

// LoadDir loads every *.yaml and *.yml file in dir. Files that fail to load
// are logged and skipped.
func (r *Repository) LoadDir(dir string, logger *slog.Logger) (int, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return 0, fmt.Errorf("glob %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	total := 0
	for _, file := range files {
		n, err := r.LoadFile(file)
		total += n
		if err != nil {
			logger.Warn("failed to load question bank", "file", file, "error", err)
			continue
		}
		logger.Debug("question bank loaded", "file", file, "questions", n)
	}
	logger.Info("question banks loaded", "files", len(files), "questions", total)
	return total, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedBankVersion, v)
	}
	if semver.Major(v) != SupportedMajor {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedBankVersion, v, SupportedMajor)
	}
	return nil
}
