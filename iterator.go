package abicoder

// Iterator walks a calldata block tree in serialization order.
//
// The order is materialized when the iterator is created: a set is followed by
// its members, then by the dependencies of its unaliased pointer members, so
// out-of-line data always follows every direct member of the enclosing set.
type Iterator struct {
	cd      *Calldata
	queue   []BlockID
	reverse bool
}

// NewCalldataIterator returns an iterator yielding blocks in encoding order.
// Pointers aliased by the last Optimize call do not have their dependencies visited.
func NewCalldataIterator(cd *Calldata, root BlockID) *Iterator {
	return newIterator(cd, root, cd.aliases, false)
}

// NewReverseCalldataIterator returns an iterator yielding blocks last to first.
func NewReverseCalldataIterator(cd *Calldata, root BlockID) *Iterator {
	return newIterator(cd, root, cd.aliases, true)
}

func newIterator(cd *Calldata, root BlockID, aliases map[BlockID]BlockID, reverse bool) *Iterator {
	it := &Iterator{cd: cd, reverse: reverse}
	if root != NoBlock {
		it.queue = cd.buildQueue(root, aliases, make([]BlockID, 0, len(cd.blocks)))
	}
	return it
}

// buildQueue appends the traversal order of the subtree rooted at id to queue.
func (cd *Calldata) buildQueue(id BlockID, aliases map[BlockID]BlockID, queue []BlockID) []BlockID {
	queue = append(queue, id)

	set, ok := cd.blocks[id].(*SetBlock)
	if !ok {
		return queue
	}
	for _, member := range set.members {
		queue = cd.buildQueue(member, aliases, queue)
	}
	for _, member := range set.members {
		ptr, ok := cd.blocks[member].(*PointerBlock)
		if !ok {
			continue
		}
		if _, aliased := aliases[ptr.id]; aliased {
			continue
		}
		queue = cd.buildQueue(ptr.dependency, aliases, queue)
	}
	return queue
}

// Next returns the next block, or false when the iterator is exhausted.
func (it *Iterator) Next() (Block, bool) {
	if len(it.queue) == 0 {
		return nil, false
	}
	var id BlockID
	if it.reverse {
		id = it.queue[len(it.queue)-1]
		it.queue = it.queue[:len(it.queue)-1]
	} else {
		id = it.queue[0]
		it.queue = it.queue[1:]
	}
	return it.cd.blocks[id], true
}

// Len returns the number of blocks not yet returned.
func (it *Iterator) Len() int {
	return len(it.queue)
}

// Blocks returns the remaining blocks in iteration order without consuming them.
func (it *Iterator) Blocks() []Block {
	out := make([]Block, len(it.queue))
	for i, id := range it.queue {
		if it.reverse {
			out[len(it.queue)-1-i] = it.cd.blocks[id]
		} else {
			out[i] = it.cd.blocks[id]
		}
	}
	return out
}
