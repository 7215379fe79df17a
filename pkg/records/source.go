// Package records supplies normalized records to the engine build
// pipeline. It is the boundary to the record normalizer collaborator:
// sources load per-layer record collections from YAML or Parquet
// files, and Store stages them in a local badger database so rebuilds
// do not re-read the originals.
package records

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/soundprediction/strata/pkg/types"
)

var (
	// ErrMissingCollection is returned when a layer has no record
	// collection configured or its backing file is absent. The engine
	// treats this as a per-layer skip, not a fatal error.
	ErrMissingCollection = errors.New("record collection missing for layer")
)

// Source supplies the normalized records for one layer.
type Source interface {
	// Layer returns the record collection for the given layer.
	// A missing collection is reported as ErrMissingCollection.
	Layer(ctx context.Context, id types.LayerID) ([]*types.Record, error)
}

// StaticSource serves records from memory. Used for tests and demo
// seeding.
type StaticSource map[types.LayerID][]*types.Record

// Layer implements Source.
func (s StaticSource) Layer(_ context.Context, id types.LayerID) ([]*types.Record, error) {
	recs, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollection, id)
	}
	return recs, nil
}

// FileSource loads one YAML document per layer, each holding a list of
// records.
type FileSource struct {
	// Paths maps a layer to its YAML file.
	Paths map[types.LayerID]string
}

// NewFileSource creates a file source over the given per-layer paths.
func NewFileSource(paths map[types.LayerID]string) *FileSource {
	return &FileSource{Paths: paths}
}

// Layer implements Source.
func (s *FileSource) Layer(ctx context.Context, id types.LayerID) ([]*types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, ok := s.Paths[id]
	if !ok || path == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollection, id)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s (%s)", ErrMissingCollection, id, path)
		}
		return nil, fmt.Errorf("failed to read records for layer %s: %w", id, err)
	}

	var recs []*types.Record
	if err := yaml.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode records for layer %s: %w", id, err)
	}
	return recs, nil
}

// WriteFile writes a record collection as a YAML document, the inverse
// of FileSource.Layer.
func WriteFile(path string, recs []*types.Record) error {
	data, err := yaml.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	return nil
}
