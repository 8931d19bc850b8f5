package idgen

import (
	"strings"

	"github.com/google/uuid"
)

// Generator ID 생성기
type Generator struct {
	prefix string
}

// NewGenerator 새 ID 생성기 생성
func NewGenerator(prefix ...string) *Generator {
	var p string
	if len(prefix) > 0 {
		p = prefix[0]
	}
	return &Generator{
		prefix: p,
	}
}

// OrderID 오더 ID 생성
func (g *Generator) OrderID() string {
	return g.generate()
}

// ActionID 액션 ID 생성
func (g *Generator) ActionID() string {
	return g.generate()
}

// generate 32자리 hex 문자열 생성 (uuid v4)
func (g *Generator) generate() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if g.prefix != "" {
		return g.prefix + "_" + id
	}
	return id
}

// 전역 ID 생성기 인스턴스들
var (
	// Default 기본 생성기 (HTTP 로 받은 오더의 orderId)
	Default = NewGenerator()

	// Action 즉시 액션 생성기
	Action = NewGenerator("action")
)

// OrderID 오더 ID 생성
func OrderID() string {
	return Default.OrderID()
}
