package diag

import (
	"fmt"
	"sort"

	"fortio.org/safecast"
)

// Bag collects diagnostics up to a fixed capacity. A host command fills
// one bag per run, sorts it once for deterministic output, and renders
// it through internal/diagfmt.
type Bag struct {
	items   []*Diagnostic
	maximum uint16
}

// NewBag allocates a Bag that holds at most maximum diagnostics; Add
// silently drops anything past that limit so a pathological input can't
// flood a terminal with diagnostics.
func NewBag(maximum int) *Bag {
	limit, err := safecast.Conv[uint16](maximum)
	if err != nil {
		panic(fmt.Errorf("diag: bag capacity overflow: %w", err))
	}
	return &Bag{
		items:   make([]*Diagnostic, 0, limit),
		maximum: limit,
	}
}

// Add appends d to the bag, reporting whether it was kept. d is dropped
// once the bag is at capacity or is nil.
func (b *Bag) Add(d *Diagnostic) bool {
	if d == nil || len(b.items) >= int(b.maximum) {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any diagnostic in the bag is at SevError or
// above, the signal a host CLI uses to decide whether to emit a module.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity >= SevError {
			return true
		}
	}
	return false
}

// Items returns the bag's diagnostics. The slice aliases the bag's
// backing array; callers must not mutate it.
func (b *Bag) Items() []*Diagnostic {
	return b.items
}

// Sort orders diagnostics by source position (file, then start, then
// end), then by descending severity, then by the code's rendered ID text
// (so every GEN code sorts before every LEX code), so two
// runs over the same input always print in the same order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		if di.Primary.End != dj.Primary.End {
			return di.Primary.End < dj.Primary.End
		}
		if di.Severity != dj.Severity {
			return di.Severity > dj.Severity
		}
		return di.Code.String() < dj.Code.String()
	})
}
