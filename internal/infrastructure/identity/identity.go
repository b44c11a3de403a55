package identity

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator issues UUIDs and DI<year><sequence> registration numbers. The
// sequence is shared by all years and never resets.
type Generator struct {
	mu   sync.Mutex
	next int
	year int
}

// NewGenerator starts the registration sequence at start. A non-zero year
// pins the number prefix instead of taking it from the submission date.
func NewGenerator(start, year int) *Generator {
	if start < 0 {
		start = 0
	}
	return &Generator{next: start, year: year}
}

func (g *Generator) NewID() string {
	return uuid.NewString()
}

func (g *Generator) NextDeclarationNumber(at time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	seq := g.next
	g.next++

	year := g.year
	if year == 0 {
		year = at.Year()
	}
	return fmt.Sprintf("DI%04d%06d", year, seq)
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
