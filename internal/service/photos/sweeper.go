package photos

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/dorado/internal/logging"
	"github.com/Domenick1991/dorado/internal/photostore"
)

// PhotoReferences lists the photo keys still linked to a passenger.
type PhotoReferences interface {
	PhotoKeys(ctx context.Context) (map[string]struct{}, error)
}

// Sweeper deletes stored photos that no passenger references, such as
// uploads left behind by a crash between the write and the insert.
type Sweeper struct {
	store photostore.Store
	refs  PhotoReferences
	grace time.Duration
	log   logging.Logger
	now   func() time.Time
}

func NewSweeper(store photostore.Store, refs PhotoReferences, grace time.Duration, log logging.Logger) *Sweeper {
	return &Sweeper{store: store, refs: refs, grace: grace, log: log, now: time.Now}
}

// Sweep removes unreferenced photos older than the grace period and returns
// their keys. Younger files may belong to a request still in flight.
func (s *Sweeper) Sweep(ctx context.Context) ([]string, error) {
	objects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, nil
	}

	keys, err := s.refs.PhotoKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("load photo references: %w", err)
	}

	cutoff := s.now().Add(-s.grace)
	var removed []string
	for _, obj := range objects {
		if _, ok := keys[obj.Key]; ok {
			continue
		}
		if obj.ModTime.After(cutoff) {
			continue
		}
		if err := s.store.Delete(ctx, obj.Key); err != nil {
			s.log.Warn(ctx, "orphan photo delete failed", "key", obj.Key, "error", err)
			continue
		}
		removed = append(removed, obj.Key)
	}
	return removed, nil
}
