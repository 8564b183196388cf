package domain

import (
	"errors"
	"time"
)

// ErrInvalidInput is the single error kind the transform functions produce:
// the dataset is malformed (nil) or an argument references a column or field
// that does not exist. Callers match it with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// Dataset is an immutable, ordered collection of sightings loaded once at
// startup. All derived views allocate fresh result slices; nothing here is
// mutated after construction, which is what makes concurrent fan-out from
// HTTP handlers safe without locking.
type Dataset struct {
	observations []Observation
	source       string
	loadedAt     time.Time
}

// NewDataset seals a slice of observations into a Dataset. The slice is
// copied so later mutation by the caller cannot leak into derived views.
// Source is a human-readable origin label (usually the file path) used in
// logs and the dataset summary.
func NewDataset(observations []Observation, source string) *Dataset {
	obs := make([]Observation, len(observations))
	copy(obs, observations)
	return &Dataset{
		observations: obs,
		source:       source,
		loadedAt:     clock.Now().UTC(),
	}
}

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.observations) }

// Source returns the origin label supplied at construction.
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns when the Dataset was sealed.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
