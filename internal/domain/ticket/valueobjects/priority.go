package valueobjects

import "fmt"

const (
	MinPriority     = 0
	MaxPriority     = 5
	DefaultPriority = 3
)

// Priority orders tickets; lower values are handled first.
type Priority int

func (p Priority) Int() int {
	return int(p)
}

func (p Priority) IsValid() bool {
	return p >= MinPriority && p <= MaxPriority
}

func NewPriority(value int) (Priority, error) {
	p := Priority(value)
	if !p.IsValid() {
		return 0, fmt.Errorf("priority must be between %d and %d, got %d", MinPriority, MaxPriority, value)
	}
	return p, nil
}
