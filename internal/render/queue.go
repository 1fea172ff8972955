package render

import "sort"

// RenderQueue collects projected surfaces for one frame and orders them for the
// painter's algorithm
type RenderQueue struct {
	items []Renderable
}

// NewRenderQueue creates an empty queue
func NewRenderQueue() *RenderQueue {
	return &RenderQueue{items: make([]Renderable, 0, 64)}
}

// Add appends a surface to the queue
func (q *RenderQueue) Add(r Renderable) {
	q.items = append(q.items, r)
}

// Sort orders the queue farthest first. Equal distances keep insertion order.
func (q *RenderQueue) Sort() {
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].Base().Distance > q.items[j].Base().Distance
	})
}

// Items returns the queued surfaces in their current order
func (q *RenderQueue) Items() []Renderable {
	return q.items
}

// Len returns the number of queued surfaces
func (q *RenderQueue) Len() int {
	return len(q.items)
}

// Reset empties the queue, keeping its storage for the next frame
func (q *RenderQueue) Reset() {
	clear(q.items)
	q.items = q.items[:0]
}
