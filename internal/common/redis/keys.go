package redis

import "fmt"

// Redis Key Patterns Redis 키 패턴 상수
const (
	// headerId 카운터 (manufacturer, serialNumber)
	HeaderIDPattern = "header_id:%s:%s"

	// 차량이 실행 중인 오더 (manufacturer, serialNumber)
	ActiveOrderPattern = "active_order:%s:%s"
)

// HeaderID headerId 카운터 키 생성
func HeaderID(manufacturer, serialNumber string) string {
	return fmt.Sprintf(HeaderIDPattern, manufacturer, serialNumber)
}

// ActiveOrder 활성 오더 키 생성
func ActiveOrder(manufacturer, serialNumber string) string {
	return fmt.Sprintf(ActiveOrderPattern, manufacturer, serialNumber)
}
