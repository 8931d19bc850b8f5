package idgen

import (
	"context"
	"sync"
)

// HeaderSequencer 송신자별 headerId 발급
type HeaderSequencer interface {
	Next(ctx context.Context, manufacturer, serialNumber string) (uint32, error)
}

// MemorySequencer 프로세스 메모리 기반 headerId 발급기. 0부터 시작하고 uint32 범위에서 순환
type MemorySequencer struct {
	mu       sync.Mutex
	counters map[string]uint32
	started  map[string]bool
}

// NewMemorySequencer 새 메모리 발급기 생성
func NewMemorySequencer() *MemorySequencer {
	return &MemorySequencer{
		counters: make(map[string]uint32),
		started:  make(map[string]bool),
	}
}

// Next 다음 headerId 반환
func (s *MemorySequencer) Next(_ context.Context, manufacturer, serialNumber string) (uint32, error) {
	key := manufacturer + "/" + serialNumber

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started[key] {
		s.started[key] = true
		s.counters[key] = 0
		return 0, nil
	}
	s.counters[key]++
	return s.counters[key], nil
}

// Set 다음 Next 호출이 id+1 을 반환하도록 카운터 설정
func (s *MemorySequencer) Set(manufacturer, serialNumber string, id uint32) {
	key := manufacturer + "/" + serialNumber

	s.mu.Lock()
	defer s.mu.Unlock()

	s.started[key] = true
	s.counters[key] = id
}
