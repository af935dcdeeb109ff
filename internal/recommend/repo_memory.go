package recommend

import (
	"context"
	"sort"
	"sync"
)

type MemoryHistoryRepo struct {
	mu   sync.RWMutex
	runs map[string][]Run
}

func NewMemoryHistoryRepo() *MemoryHistoryRepo {
	return &MemoryHistoryRepo{runs: make(map[string][]Run)}
}

func (r *MemoryHistoryRepo) Create(ctx context.Context, run Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs[run.UserID] = append(r.runs[run.UserID], run)
	return nil
}

func (r *MemoryHistoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := append([]Run(nil), r.runs[userID]...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []Run{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
