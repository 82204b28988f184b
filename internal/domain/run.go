package domain

import (
	"time"

	"github.com/google/uuid"
)

// BuildRun describes one corpus build, recorded with the loaded tables.
type BuildRun struct {
	ID         uuid.UUID
	SourceDir  string
	Documents  int
	Skipped    int
	Counts     TableCounts
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewBuildRun starts a run record with a fresh id.
func NewBuildRun(sourceDir string, now time.Time) BuildRun {
	return BuildRun{
		ID:        uuid.New(),
		SourceDir: sourceDir,
		StartedAt: now,
	}
}
