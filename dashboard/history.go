package dashboard

import "go-aware/types"

// historyLimit caps the local submission cache. Oldest entries are evicted
// first once the cap is reached.
const historyLimit = 30

// History is the reporter's local submission cache. New entries go to the
// head; a Pending sync entry is retained even when the store write never
// happened.
type History struct {
	entries []types.FieldReport
}

// Push prepends a report and evicts the oldest entry past the cap.
func (h *History) Push(report types.FieldReport) {
	h.entries = append([]types.FieldReport{report}, h.entries...)
	if len(h.entries) > historyLimit {
		h.entries = h.entries[:historyLimit]
	}
}

// Resolve updates the sync status of the entry with the given local ID,
// rewriting its ID when the store assigned a canonical one.
func (h *History) Resolve(localID string, status types.SyncStatus, canonicalID string) {
	for i := range h.entries {
		if h.entries[i].ID == localID {
			h.entries[i].SyncStatus = status
			if canonicalID != "" {
				h.entries[i].ID = canonicalID
			}
			return
		}
	}
}

// Entries returns a copy of the cache, newest first.
func (h *History) Entries() []types.FieldReport {
	out := make([]types.FieldReport, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int { return len(h.entries) }
