package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go-pipeline-builder/internal/model"
)

type memoryEntry struct {
	spec      []byte
	steps     int
	createdAt time.Time
}

// MemoryStore is a process-local Store for development and tests. Entries
// are kept encoded so loads never alias saved data.
type MemoryStore struct {
	mu        sync.RWMutex
	pipelines map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{pipelines: map[string]memoryEntry{}}
}

func (s *MemoryStore) Save(_ context.Context, name string, steps []model.PipelineStep) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	spec, err := encode(steps)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pipelines[name]; ok {
		return fmt.Errorf("pipeline %q %w", name, ErrAlreadyExists)
	}
	s.pipelines[name] = memoryEntry{spec: spec, steps: len(steps), createdAt: time.Now().UTC()}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, name string) ([]model.PipelineStep, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	e, ok := s.pipelines[name]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	return decode(e.spec)
}

func (s *MemoryStore) List(_ context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Summary, 0, len(s.pipelines))
	for name, e := range s.pipelines {
		out = append(out, Summary{Name: name, Steps: e.steps, CreatedAt: e.createdAt})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, name string) error {
	name, err := CleanName(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pipelines[name]; !ok {
		return fmt.Errorf("pipeline %q %w", name, ErrNotFound)
	}
	delete(s.pipelines, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
