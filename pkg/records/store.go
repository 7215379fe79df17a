package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/soundprediction/strata/pkg/types"
)

// Store stages normalized record collections in a local badger
// database. It implements Source, so a rebuild can run against the
// staged copy instead of re-reading the original files.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// OpenStore opens (or creates) a record store at path.
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // badger's own logger is too chatty for a cache
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

func layerKey(id types.LayerID) []byte {
	return []byte("records/" + string(id))
}

// Put stages a record collection for a layer, replacing any previous one.
func (s *Store) Put(ctx context.Context, id types.LayerID, recs []*types.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode records for layer %s: %w", id, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(layerKey(id), data)
	})
	if err != nil {
		return fmt.Errorf("failed to stage records for layer %s: %w", id, err)
	}
	s.logger.Debug("records staged", "layer", id, "count", len(recs))
	return nil
}

// Layer implements Source.
func (s *Store) Layer(ctx context.Context, id types.LayerID) ([]*types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(layerKey(id))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrMissingCollection, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged records for layer %s: %w", id, err)
	}

	var recs []*types.Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode staged records for layer %s: %w", id, err)
	}
	return recs, nil
}

// WarmFrom stages every layer the source can provide. Layers the
// source is missing are skipped, matching the engine's per-layer
// isolation.
func (s *Store) WarmFrom(ctx context.Context, src Source) error {
	for _, id := range types.LayerOrder {
		recs, err := src.Layer(ctx, id)
		if errors.Is(err, ErrMissingCollection) {
			s.logger.Warn("source has no records for layer", "layer", id)
			continue
		}
		if err != nil {
			return err
		}
		if err := s.Put(ctx, id, recs); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
