package cellgrid

// Per-cell render cache. Each cached cell owns one slot in an arena;
// slots are addressed through a generation-tagged index so a stale
// reference taken before an invalidation can never read a recycled
// slot. The engine sweeps the arena after each frame and notifies the
// owning renderer when a cell has left all visible regions.

type cacheRef struct {
	index int
	gen   uint32
}

type cacheSlot struct {
	addr     CellAddress
	renderer string
	value    interface{}
	gen      uint32
	live     bool
}

type renderCache struct {
	slots []cacheSlot
	free  []int
	index map[CellAddress]cacheRef
}

func (c *renderCache) get(addr CellAddress) (interface{}, bool) {
	ref, ok := c.index[addr]
	if !ok {
		return nil, false
	}
	slot := &c.slots[ref.index]
	if !slot.live || slot.gen != ref.gen {
		delete(c.index, addr)
		return nil, false
	}
	return slot.value, true
}

func (c *renderCache) put(addr CellAddress, renderer string, v interface{}) {
	if c.index == nil {
		c.index = make(map[CellAddress]cacheRef)
	}
	if ref, ok := c.index[addr]; ok {
		slot := &c.slots[ref.index]
		if slot.live && slot.gen == ref.gen {
			slot.renderer = renderer
			slot.value = v
			return
		}
	}
	var i int
	if n := len(c.free); n > 0 {
		i = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		c.slots = append(c.slots, cacheSlot{})
		i = len(c.slots) - 1
	}
	slot := &c.slots[i]
	slot.gen++
	slot.addr = addr
	slot.renderer = renderer
	slot.value = v
	slot.live = true
	c.index[addr] = cacheRef{index: i, gen: slot.gen}
}

// invalidate drops the cell's slot immediately, bumping its generation
// so outstanding references go stale. onEvict, when non-nil, receives
// the owning renderer's name.
func (c *renderCache) invalidate(addr CellAddress, onEvict func(renderer string, addr CellAddress)) {
	ref, ok := c.index[addr]
	if !ok {
		return
	}
	slot := &c.slots[ref.index]
	if !slot.live || slot.gen != ref.gen {
		delete(c.index, addr)
		return
	}
	renderer := slot.renderer
	slot.live = false
	slot.value = nil
	slot.gen++
	c.free = append(c.free, ref.index)
	delete(c.index, addr)
	if onEvict != nil {
		onEvict(renderer, addr)
	}
}

// sweep evicts every slot whose cell is no longer visible.
func (c *renderCache) sweep(visible func(CellAddress) bool, onEvict func(renderer string, addr CellAddress)) {
	for addr := range c.index {
		if !visible(addr) {
			c.invalidate(addr, onEvict)
		}
	}
}

// invalidateIf evicts every slot whose address matches pred. Used for
// the store's structural change notifications.
func (c *renderCache) invalidateIf(pred func(CellAddress) bool, onEvict func(renderer string, addr CellAddress)) {
	for addr := range c.index {
		if pred(addr) {
			c.invalidate(addr, onEvict)
		}
	}
}
