package core

import (
	"context"
	"strings"
)

// Blacklist answers the single question the pipeline needs: is this
// customer barred from cover. Implementations are read-only after
// load; list maintenance is an administrative concern outside this
// service.
type Blacklist interface {
	Contains(ctx context.Context, customerID string) (bool, error)
}

// NormalizeCustomerID canonicalizes an identifier for membership
// checks: trimmed and lower-cased. Every Blacklist implementation must
// apply it so " BLK001 " and "blk001" agree.
func NormalizeCustomerID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// MemoryBlacklist is the in-process implementation, loaded once at
// startup. Safe for concurrent readers because it is never mutated
// after construction.
type MemoryBlacklist struct {
	ids map[string]struct{}
}

func NewMemoryBlacklist(ids []string) *MemoryBlacklist {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		norm := NormalizeCustomerID(id)
		if norm == "" {
			continue
		}
		set[norm] = struct{}{}
	}
	return &MemoryBlacklist{ids: set}
}

func (b *MemoryBlacklist) Contains(_ context.Context, customerID string) (bool, error) {
	norm := NormalizeCustomerID(customerID)
	if norm == "" {
		// An absent id is never blacklisted.
		return false, nil
	}
	_, ok := b.ids[norm]
	return ok, nil
}
