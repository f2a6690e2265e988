package library

// slotRegistry is a fixed-capacity array of slots holding pointers to entities.
//
// Occupied slots always form a contiguous prefix: inserts take the first free slot and
// nothing is ever removed. firstFreeSlot depends on this. If a remove operation is ever
// added, firstFreeSlot must become a linear scan or use a free list.
type slotRegistry[T any] struct {
	slots []*T
}

func newSlotRegistry[T any](capacity int) slotRegistry[T] {
	if capacity < 0 {
		capacity = 0
	}

	return slotRegistry[T]{slots: make([]*T, capacity)}
}

// insert places item into the first free slot, unless the very same item already occupies a slot.
// It returns the id and whether the item was newly placed.
// A non-nil claim runs right before placing and can veto the insert.
func (r *slotRegistry[T]) insert(item *T, claim func(*T) error) (int, bool, error) {
	if item == nil {
		return NoID, false, ErrNilEntity
	}

	if id := r.lookup(item); id != NoID {
		return id, false, nil // idempotency - already registered
	}

	id := r.firstFreeSlot()
	if id == NoID {
		return NoID, false, ErrCapacityExceeded
	}

	if claim != nil {
		if err := claim(item); err != nil {
			return NoID, false, err
		}
	}

	r.slots[id] = item

	return id, true, nil
}

// lookup compares pointers, never field values.
func (r *slotRegistry[T]) lookup(item *T) int {
	if item == nil {
		return NoID
	}

	for id, slot := range r.slots {
		if slot == nil {
			break // nothing beyond the occupied prefix
		}

		if slot == item {
			return id
		}
	}

	return NoID
}

func (r *slotRegistry[T]) idValid(id int) bool {
	if id < 0 || id >= len(r.slots) {
		return false
	}

	return r.slots[id] != nil
}

// at returns the item in slot id; callers check idValid first.
func (r *slotRegistry[T]) at(id int) *T {
	return r.slots[id]
}

// firstFreeSlot binary-searches the boundary between the occupied prefix and the free suffix.
// Returns NoID if the registry is full.
func (r *slotRegistry[T]) firstFreeSlot() int {
	low, high := 0, len(r.slots)-1

	for low <= high {
		mid := low + (high-low)/2

		if r.slots[mid] != nil {
			low = mid + 1
			continue
		}

		if mid == 0 || r.slots[mid-1] != nil {
			return mid
		}

		high = mid - 1
	}

	return NoID
}

func (r *slotRegistry[T]) count() int {
	if free := r.firstFreeSlot(); free != NoID {
		return free
	}

	return len(r.slots)
}

func (r *slotRegistry[T]) capacity() int {
	return len(r.slots)
}

// occupied returns the occupied prefix; the returned slice shares the backing array.
func (r *slotRegistry[T]) occupied() []*T {
	return r.slots[:r.count()]
}
