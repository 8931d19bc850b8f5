package redis

import (
	"context"
	"fmt"

	keys "vda5050-bridge/internal/common/redis"

	"github.com/go-redis/redis/v8"
)

// Incrementer Redis INCR 만 필요로 하는 최소 인터페이스
type Incrementer interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// HeaderSequencer Redis 카운터 기반 headerId 발급기. 여러 브리지 인스턴스가 같은 카운터를 공유
type HeaderSequencer struct {
	client Incrementer
}

// NewHeaderSequencer 새 발급기 생성
func NewHeaderSequencer(client Incrementer) *HeaderSequencer {
	return &HeaderSequencer{client: client}
}

// Next 다음 headerId 반환. 첫 값은 0 이고 2^32 에서 순환
func (s *HeaderSequencer) Next(ctx context.Context, manufacturer, serialNumber string) (uint32, error) {
	key := keys.HeaderID(manufacturer, serialNumber)
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return uint32(n - 1), nil
}
