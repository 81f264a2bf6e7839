package ga

import (
	"fmt"

	"github.com/jinzhu/copier"
)

// HallOfFame keeps the best individuals seen during a run, best first.
// Entries are deep copies and two entries never share an equal genome.
type HallOfFame struct {
	maxSize int
	weight  float64
	items   []*Individual
}

// NewHallOfFame creates a hall of fame holding at most size individuals.
// weight is +1 when larger fitness is better and -1 otherwise.
func NewHallOfFame(size int, weight float64) *HallOfFame {
	if size < 0 {
		size = 0
	}
	return &HallOfFame{maxSize: size, weight: weight}
}

// Len returns the number of stored individuals
func (h *HallOfFame) Len() int {
	return len(h.items)
}

// At returns a copy of the individual at rank i (0 is the best)
func (h *HallOfFame) At(i int) *Individual {
	return h.items[i].Clone()
}

// Items returns copies of the ranked entries
func (h *HallOfFame) Items() []*Individual {
	out := make([]*Individual, len(h.items))
	for i, item := range h.items {
		out[i] = item.Clone()
	}
	return out
}

// Update offers every evaluated individual in pop to the hall of fame
func (h *HallOfFame) Update(pop Population) error {
	if h.maxSize == 0 {
		return nil
	}
	for _, ind := range pop {
		if !ind.Valid {
			continue
		}
		if len(h.items) >= h.maxSize && !h.better(ind, h.items[len(h.items)-1]) {
			continue
		}
		if h.contains(ind) {
			continue
		}
		if err := h.insert(ind); err != nil {
			return err
		}
	}
	return nil
}

func (h *HallOfFame) better(a, b *Individual) bool {
	return h.weight*a.Fitness > h.weight*b.Fitness
}

func (h *HallOfFame) contains(ind *Individual) bool {
	for _, item := range h.items {
		if item.Equal(ind) {
			return true
		}
	}
	return false
}

func (h *HallOfFame) insert(ind *Individual) error {
	entry := &Individual{}
	if err := copier.CopyWithOption(entry, ind, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("copy hall of fame entry: %w", err)
	}

	pos := len(h.items)
	for i, item := range h.items {
		if h.better(entry, item) {
			pos = i
			break
		}
	}
	h.items = append(h.items, nil)
	copy(h.items[pos+1:], h.items[pos:])
	h.items[pos] = entry

	if len(h.items) > h.maxSize {
		h.items = h.items[:h.maxSize]
	}
	return nil
}
