package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	keys "vda5050-bridge/internal/common/redis"
	"vda5050-bridge/internal/vda5050"

	"github.com/go-redis/redis/v8"
)

// KeyValue 오더 저장소가 사용하는 Redis 명령
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// OrderStore 차량별 활성 오더 저장소. 오더는 와이어 포맷으로 저장
type OrderStore struct {
	client KeyValue
	ttl    time.Duration
}

// NewOrderStore 새 오더 저장소 생성. ttl 이 0 이면 만료 없음
func NewOrderStore(client KeyValue, ttl time.Duration) *OrderStore {
	return &OrderStore{client: client, ttl: ttl}
}

// Save 오더를 해당 차량의 활성 오더로 저장
func (s *OrderStore) Save(ctx context.Context, order *vda5050.Order) error {
	payload, err := vda5050.EncodeOrder(order)
	if err != nil {
		return err
	}

	key := keys.ActiveOrder(order.Manufacturer, order.SerialNumber)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Active 활성 오더 조회. 없으면 nil, nil
func (s *OrderStore) Active(ctx context.Context, manufacturer, serialNumber string) (*vda5050.Order, error) {
	key := keys.ActiveOrder(manufacturer, serialNumber)
	payload, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	order, err := vda5050.DecodeOrder(payload)
	if err != nil {
		return nil, fmt.Errorf("stored order %s: %w", key, err)
	}
	return order, nil
}

// Clear 활성 오더 삭제
func (s *OrderStore) Clear(ctx context.Context, manufacturer, serialNumber string) error {
	key := keys.ActiveOrder(manufacturer, serialNumber)
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
