// Package editor owns the in-memory resume document and exposes per-section edits.
package editor

import (
	"fmt"

	"github.com/jonathan/careerforge/internal/types"
)

// ItemNotFoundError is returned when a list item id does not exist in its list
type ItemNotFoundError struct {
	List string
	ID   string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s item not found: %s", e.List, e.ID)
}

// BulletIndexError is returned when a project bullet index is out of range
type BulletIndexError struct {
	ProjectID string
	Index     int
	Len       int
}

func (e *BulletIndexError) Error() string {
	return fmt.Sprintf("bullet index %d out of range for project %s (%d bullets)", e.Index, e.ProjectID, e.Len)
}

// InvalidScoreTypeError is returned when an education entry carries an unknown score type
type InvalidScoreTypeError struct {
	Value string
}

func (e *InvalidScoreTypeError) Error() string {
	return fmt.Sprintf("invalid score type %q: must be %q, %q or empty", e.Value, types.ScoreCGPA, types.ScorePercentage)
}
