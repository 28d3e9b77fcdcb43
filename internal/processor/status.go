package processor

import (
	"context"
	"fmt"
)

// Status compares the ledger with the index
type Status struct {
	Collection   string `json:"collection"`
	IndexExists  bool   `json:"index_exists"`
	IndexedCount uint64 `json:"indexed_count"`
	LedgerCount  int    `json:"ledger_count"`
}

// InSync reports whether the ledger and index agree on the document count
func (s *Status) InSync() bool {
	return uint64(s.LedgerCount) == s.IndexedCount
}

// CollectStatus reads the ledger size and the index point count
func CollectStatus(ctx context.Context, l Ledger, index Index, collection string) (*Status, error) {
	ids, err := l.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	st := &Status{Collection: collection, LedgerCount: len(ids)}

	st.IndexExists, err = index.CollectionExists(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to check collection: %w", err)
	}
	if st.IndexExists {
		st.IndexedCount, err = index.Count(ctx, collection)
		if err != nil {
			return nil, err
		}
	}
	return st, nil
}
