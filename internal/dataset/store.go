package dataset

import (
	"context"

	"github.com/sells-group/insights-cli/internal/model"
)

// SnapshotStore persists raw dataset snapshots keyed by endpoint cache
// key. Implementations return ErrNotFound when no snapshot exists.
type SnapshotStore interface {
	GetSnapshot(ctx context.Context, key string) ([]byte, error)
	PutSnapshot(ctx context.Context, key string, data []byte) error
	ListKeys(ctx context.Context) ([]string, error)
	Migrate(ctx context.Context) error
	Close() error
}

// StoreSource adapts a SnapshotStore into the dataset source chain.
type StoreSource struct {
	name  string
	store SnapshotStore
}

// NewStoreSource wraps a SnapshotStore as a Source.
func NewStoreSource(name string, store SnapshotStore) *StoreSource {
	return &StoreSource{name: name, store: store}
}

// Name implements Source.
func (s *StoreSource) Name() string { return s.name }

// Load implements Source.
func (s *StoreSource) Load(ctx context.Context, key string) (*model.RawDataset, error) {
	data, err := s.store.GetSnapshot(ctx, key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
