package deque

import (
	"github.com/lucasgdosr/stl/algorithm"
	"github.com/lucasgdosr/stl/memory"
)

const (
	// blockBytes is the target size of one buffer.
	blockBytes = 512
	// initialMapSize is the smallest number of map slots ever allocated.
	initialMapSize = 8
)

// bufferSize returns the number of elements per buffer for T.
func bufferSize[T any]() int {
	return max(1, blockBytes/memory.SizeOf[T]())
}

// blockMap is the indirection table of a Deque. Slots inside the live window
// [start.node, finish.node] hold allocated buffers; every other slot is nil.
type blockMap[T any] struct {
	nodes   [][]T
	bufSize int
}

// iter returns an Iterator at slot cur of the buffer in node.
func (m *blockMap[T]) iter(node, cur int) Iterator[T] {
	it := Iterator[T]{m: m, cur: cur}
	it.setNode(node)
	return it
}

// initMap allocates a map and the buffers needed to hold n elements, and
// positions start and finish n elements apart in the middle of the map.
func (d *Deque[T]) initMap(n int) error {
	bs := bufferSize[T]()
	numNodes := n/bs + 1
	mapSize := max(initialMapSize, numNodes+2)
	nodes, err := d.mapAlloc.Allocate(mapSize)
	if err != nil {
		return err
	}
	m := &blockMap[T]{nodes: nodes, bufSize: bs}
	first := (mapSize - numNodes) / 2
	if err := d.createNodes(m, first, first+numNodes); err != nil {
		d.mapAlloc.Deallocate(nodes)
		return err
	}
	d.m = m
	d.start = m.iter(first, 0)
	d.finish = m.iter(first+numNodes-1, n%bs)
	return nil
}

func (d *Deque[T]) ensureMap() error {
	if d.m != nil {
		return nil
	}
	return d.initMap(0)
}

// createNodes allocates buffers for the map slots [first, last). On failure
// the buffers allocated by this call are released again.
func (d *Deque[T]) createNodes(m *blockMap[T], first, last int) error {
	for i := first; i < last; i++ {
		buf, err := d.alloc.Allocate(m.bufSize)
		if err != nil {
			d.destroyNodes(m, first, i)
			return err
		}
		m.nodes[i] = buf
	}
	return nil
}

// destroyNodes releases the buffers in the map slots [first, last). The
// buffers must hold no constructed elements.
func (d *Deque[T]) destroyNodes(m *blockMap[T], first, last int) {
	for i := first; i < last; i++ {
		d.alloc.Deallocate(m.nodes[i])
		m.nodes[i] = nil
	}
}

// releaseSpareNodes releases buffers linked outside the live window, left
// behind by a reservation whose operation then failed.
func (d *Deque[T]) releaseSpareNodes() {
	nodes := d.m.nodes
	for i := d.finish.node + 1; i < len(nodes) && nodes[i] != nil; i++ {
		d.alloc.Deallocate(nodes[i])
		nodes[i] = nil
	}
	for i := d.start.node - 1; i >= 0 && nodes[i] != nil; i-- {
		d.alloc.Deallocate(nodes[i])
		nodes[i] = nil
	}
}

// reserveMapAtBack makes sure the map has nodesToAdd free slots after
// finish.node.
func (d *Deque[T]) reserveMapAtBack(nodesToAdd int) error {
	if nodesToAdd+1 > len(d.m.nodes)-d.finish.node {
		return d.reallocateMap(nodesToAdd, false)
	}
	return nil
}

// reserveMapAtFront makes sure the map has nodesToAdd free slots before
// start.node.
func (d *Deque[T]) reserveMapAtFront(nodesToAdd int) error {
	if nodesToAdd > d.start.node {
		return d.reallocateMap(nodesToAdd, true)
	}
	return nil
}

// reallocateMap makes room for nodesToAdd more buffers on one side. If the
// map is more than twice as large as needed, the live window is recentered
// in place. Otherwise a larger map is allocated and the window is copied to
// its middle. Buffers never move; only the slots that reference them do.
// Every Iterator other than start and finish is invalidated.
func (d *Deque[T]) reallocateMap(nodesToAdd int, addAtFront bool) error {
	oldNum := d.finish.node - d.start.node + 1
	newNum := oldNum + nodesToAdd
	nodes := d.m.nodes
	window := nodes[d.start.node : d.finish.node+1]

	var newStart int
	if mapSize := len(nodes); mapSize > 2*newNum {
		newStart = (mapSize - newNum) / 2
		if addAtFront {
			newStart += nodesToAdd
		}
		oldStart := d.start.node
		copy(nodes[newStart:newStart+oldNum], window)
		for i := oldStart; i < oldStart+oldNum; i++ {
			if i < newStart || i >= newStart+oldNum {
				nodes[i] = nil
			}
		}
	} else {
		newSize := mapSize + max(mapSize, nodesToAdd) + 2
		newNodes, err := d.mapAlloc.Allocate(newSize)
		if err != nil {
			return err
		}
		newStart = (newSize - newNum) / 2
		if addAtFront {
			newStart += nodesToAdd
		}
		copy(newNodes[newStart:], window)
		d.mapAlloc.Deallocate(nodes)
		d.m.nodes = newNodes
	}
	d.start.setNode(newStart)
	d.finish.setNode(newStart + oldNum - 1)
	return nil
}

// reserveElementsAtBack links enough buffers to hold n more elements after
// finish and returns the iterator n past finish. Nothing is constructed.
func (d *Deque[T]) reserveElementsAtBack(n int) (Iterator[T], error) {
	bs := d.m.bufSize
	if vacancies := bs - d.finish.cur - 1; n > vacancies {
		newNodes := (n - vacancies + bs - 1) / bs
		if err := d.reserveMapAtBack(newNodes); err != nil {
			return Iterator[T]{}, err
		}
		next := d.finish.node + 1
		if err := d.createNodes(d.m, next, next+newNodes); err != nil {
			return Iterator[T]{}, err
		}
	}
	return d.finish.Add(n), nil
}

// reserveElementsAtFront links enough buffers to hold n more elements before
// start and returns the iterator n before start. Nothing is constructed.
func (d *Deque[T]) reserveElementsAtFront(n int) (Iterator[T], error) {
	bs := d.m.bufSize
	if vacancies := d.start.cur; n > vacancies {
		newNodes := (n - vacancies + bs - 1) / bs
		if err := d.reserveMapAtFront(newNodes); err != nil {
			return Iterator[T]{}, err
		}
		if err := d.createNodes(d.m, d.start.node-newNodes, d.start.node); err != nil {
			return Iterator[T]{}, err
		}
	}
	return d.start.Add(-n), nil
}

// spans returns the contiguous pieces of [first, last).
func (d *Deque[T]) spans(first, last Iterator[T]) [][]T {
	if first.node == last.node {
		return [][]T{first.buf[first.cur:last.cur]}
	}
	segs := make([][]T, 0, last.node-first.node+1)
	segs = append(segs, first.buf[first.cur:])
	for n := first.node + 1; n < last.node; n++ {
		segs = append(segs, d.m.nodes[n])
	}
	return append(segs, last.buf[:last.cur])
}

// destroySpan destroys the elements in [first, last).
func (d *Deque[T]) destroySpan(first, last Iterator[T]) {
	for _, seg := range d.spans(first, last) {
		memory.Destroy(d.alloc, seg)
	}
}

// clearSpan zeroes [first, last) without running hooks, for slots whose
// elements were relocated elsewhere.
func (d *Deque[T]) clearSpan(first, last Iterator[T]) {
	for _, seg := range d.spans(first, last) {
		clear(seg)
	}
}

// truncateFront moves start to pos, zeroing the slots it leaves and releasing
// the buffers that become empty. The slots must not hold live elements.
func (d *Deque[T]) truncateFront(pos Iterator[T]) {
	d.clearSpan(d.start, pos)
	d.destroyNodes(d.m, d.start.node, pos.node)
	d.start = pos
}

// truncateBack moves finish to pos, zeroing the slots it leaves and releasing
// the buffers that become empty. The slots must not hold live elements.
func (d *Deque[T]) truncateBack(pos Iterator[T]) {
	d.clearSpan(pos, d.finish)
	d.destroyNodes(d.m, pos.node+1, d.finish.node+1)
	d.finish = pos
}

// openGap opens n unconstructed slots before position pos by shifting
// whichever side of pos is shorter, and returns the first slot of the gap.
// Buffers are reserved before anything moves, so a failure leaves the Deque
// unchanged.
func (d *Deque[T]) openGap(pos, n int) (Iterator[T], error) {
	if pos < d.Len()/2 {
		newStart, err := d.reserveElementsAtFront(n)
		if err != nil {
			return Iterator[T]{}, err
		}
		at := d.start.Add(pos)
		algorithm.Copy[T](d.start, at, newStart)
		d.start = newStart
		gap := at.Add(-n)
		d.clearSpan(gap, at)
		return gap, nil
	}
	newFinish, err := d.reserveElementsAtBack(n)
	if err != nil {
		return Iterator[T]{}, err
	}
	at := d.start.Add(pos)
	algorithm.CopyBackward[T](at, d.finish, newFinish)
	d.finish = newFinish
	d.clearSpan(at, at.Add(n))
	return at, nil
}

// relocateInto moves src into the unconstructed slots starting at gap.
func (d *Deque[T]) relocateInto(gap Iterator[T], src []T) {
	off := 0
	for _, seg := range d.spans(gap, gap.Add(len(src))) {
		off += memory.UninitializedMove(seg, src[off:off+len(seg)])
	}
}

// constructSegments runs construct over the pieces of [first, last) with
// the offset of each piece in the range, tearing down completed pieces if a
// later one fails.
func (d *Deque[T]) constructSegments(first, last Iterator[T], construct constructor[T]) error {
	off := 0
	return memory.ConstructSegments(d.alloc, d.spans(first, last), func(seg []T) error {
		err := construct(seg, off)
		off += len(seg)
		return err
	})
}

// freeStorage releases every buffer in the live window and the map itself.
// The buffers must hold no constructed elements.
func (d *Deque[T]) freeStorage() {
	d.destroyNodes(d.m, d.start.node, d.finish.node+1)
	d.mapAlloc.Deallocate(d.m.nodes)
	d.m = nil
	d.start, d.finish = Iterator[T]{}, Iterator[T]{}
}
