package transcripts

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo for dev and tests.
type MemoryRepo struct {
	mu          sync.RWMutex
	transcripts map[string][]Transcript
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{transcripts: make(map[string][]Transcript)}
}

func (r *MemoryRepo) Create(ctx context.Context, tr Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transcripts[tr.UserID] = append(r.transcripts[tr.UserID], tr)
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, id string) (Transcript, error) {
	if err := ctx.Err(); err != nil {
		return Transcript{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tr := range r.transcripts[userID] {
		if tr.ID == id {
			return tr, nil
		}
	}
	return Transcript{}, ErrNotFound
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := append([]Transcript(nil), r.transcripts[userID]...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return []Transcript{}, nil
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}
