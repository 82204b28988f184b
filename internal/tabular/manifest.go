package tabular

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// ManifestFile is the name of the manifest written next to the tables.
const ManifestFile = "manifest.yaml"

// Manifest records what a build wrote.
type Manifest struct {
	RunID      string             `yaml:"run_id"`
	SourceDir  string             `yaml:"source_dir"`
	StartedAt  time.Time          `yaml:"started_at"`
	FinishedAt time.Time          `yaml:"finished_at"`
	Documents  int                `yaml:"documents"`
	Skipped    int                `yaml:"skipped"`
	Counts     domain.TableCounts `yaml:"counts"`
	Files      []FileInfo         `yaml:"files"`
}

// NewManifest describes run and the files written for it.
func NewManifest(run domain.BuildRun, files []FileInfo) Manifest {
	return Manifest{
		RunID:      run.ID.String(),
		SourceDir:  run.SourceDir,
		StartedAt:  run.StartedAt.UTC(),
		FinishedAt: run.FinishedAt.UTC(),
		Documents:  run.Documents,
		Skipped:    run.Skipped,
		Counts:     run.Counts,
		Files:      files,
	}
}

// WriteManifest stores m as YAML at path.
func WriteManifest(path string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}
