package physics

// Pool is the memory arena backing a Simulation. It records every slot the
// simulation allocates so a disposed world can be checked for leaks and the
// whole arena released at once.
type Pool struct {
	outstanding map[string]int
	bytes       int
	peak        int
}

func NewPool() *Pool {
	return &Pool{outstanding: make(map[string]int)}
}

func (p *Pool) take(kind string, size uintptr) {
	if p == nil {
		return
	}
	if p.outstanding == nil {
		p.outstanding = make(map[string]int)
	}
	p.outstanding[kind]++
	p.bytes += int(size)
	if p.bytes > p.peak {
		p.peak = p.bytes
	}
}

func (p *Pool) give(kind string, size uintptr) {
	if p == nil || p.outstanding[kind] == 0 {
		return
	}
	p.outstanding[kind]--
	p.bytes -= int(size)
}

// Outstanding returns the number of live allocations of the given kind
// ("shape", "body", "static").
func (p *Pool) Outstanding(kind string) int {
	if p == nil {
		return 0
	}
	return p.outstanding[kind]
}

// Bytes is the approximate size of all live allocations.
func (p *Pool) Bytes() int {
	if p == nil {
		return 0
	}
	return p.bytes
}

func (p *Pool) Peak() int {
	if p == nil {
		return 0
	}
	return p.peak
}

// Clear drops every outstanding allocation.
func (p *Pool) Clear() {
	if p == nil {
		return
	}
	for k := range p.outstanding {
		delete(p.outstanding, k)
	}
	p.bytes = 0
}

// slotMap stores values in reusable slots. A removed slot bumps its
// generation so handles to the old occupant stop resolving.
// Pointers returned by get are invalidated by the next insert.
type slotMap[T any] struct {
	slots []slot[T]
	free  []int32
	live  int
}

type slot[T any] struct {
	value      T
	generation uint32
	live       bool
}

func (m *slotMap[T]) insert(v T) (int32, uint32) {
	m.live++
	if n := len(m.free); n > 0 {
		idx := m.free[n-1]
		m.free = m.free[:n-1]
		s := &m.slots[idx]
		s.value = v
		s.live = true
		return idx, s.generation
	}
	m.slots = append(m.slots, slot[T]{value: v, generation: 1, live: true})
	return int32(len(m.slots) - 1), 1
}

func (m *slotMap[T]) get(idx int32, generation uint32) *T {
	if generation == 0 || idx < 0 || int(idx) >= len(m.slots) {
		return nil
	}
	s := &m.slots[idx]
	if !s.live || s.generation != generation {
		return nil
	}
	return &s.value
}

func (m *slotMap[T]) remove(idx int32, generation uint32) bool {
	if m.get(idx, generation) == nil {
		return false
	}
	s := &m.slots[idx]
	var zero T
	s.value = zero
	s.live = false
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	m.free = append(m.free, idx)
	m.live--
	return true
}

func (m *slotMap[T]) each(fn func(idx int32, generation uint32, v *T)) {
	for i := range m.slots {
		s := &m.slots[i]
		if s.live {
			fn(int32(i), s.generation, &s.value)
		}
	}
}

func (m *slotMap[T]) clear() {
	m.slots = nil
	m.free = nil
	m.live = 0
}
