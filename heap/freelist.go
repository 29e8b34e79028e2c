package heap

// findBestFit scans the free list for the smallest block whose payload can hold size
// bytes. The list is address-ordered, so ties on size resolve to the lowest offset.
// Returns NoBlock when nothing qualifies.
func (h *Heap) findBestFit(size int) int {
	best := NoBlock
	bestSize := 0

	for it := h.listHead; it != NoBlock; it = h.nextFree(it) {
		itSize := h.blockSize(it)
		if itSize < size {
			continue
		}
		if best == NoBlock || itSize < bestSize {
			best = it
			bestSize = itSize
		}
	}

	return best
}

// removeAndSplit takes a qualifying block out of the free list. When the block has room
// for the requested payload plus another block header, the tail is carved off as a
// remainder block that takes over the victim's position in the list. Otherwise the whole
// block leaves the list, and the allocation keeps any slack bytes so that no capacity is
// ever orphaned outside a header's reach.
//
// Returns the payload capacity the allocated block ends up with: needed on a split, the
// block's full size otherwise.
func (h *Heap) removeAndSplit(block, needed int) int {
	size := h.blockSize(block)
	prev := h.prevFree(block)
	next := h.nextFree(block)

	if size-needed < HeaderSize {
		// Exact fit, or too tight to carve a remainder header from. The block may be the
		// sole entry, the head, the tail, or a middle node.
		switch {
		case prev != NoBlock && next != NoBlock:
			h.setNextFree(prev, next)
			h.setPrevFree(next, prev)
		case prev != NoBlock:
			h.setNextFree(prev, NoBlock)
		case next != NoBlock:
			h.listHead = next
			h.setPrevFree(next, NoBlock)
		default:
			h.listHead = NoBlock
		}

		h.blocksFreeCount--
		h.blocksFreeSize -= size
		return size
	}

	remainder := block + HeaderSize + needed
	h.setBlockSize(remainder, size-needed-HeaderSize)

	switch {
	case prev != NoBlock && next != NoBlock:
		h.setNextFree(prev, remainder)
		h.setPrevFree(next, remainder)
		h.setNextFree(remainder, next)
		h.setPrevFree(remainder, prev)
	case prev != NoBlock:
		h.setNextFree(prev, remainder)
		h.setPrevFree(remainder, prev)
		h.setNextFree(remainder, NoBlock)
	case next != NoBlock:
		h.listHead = remainder
		h.setPrevFree(next, remainder)
		h.setNextFree(remainder, next)
		h.setPrevFree(remainder, NoBlock)
	default:
		h.setNextFree(remainder, NoBlock)
		h.setPrevFree(remainder, NoBlock)
		h.listHead = remainder
	}

	h.blocksFreeSize -= needed + HeaderSize
	return needed
}

// insertFreeBlock splices the block into its address-sorted position in the free list.
func (h *Heap) insertFreeBlock(block int) {
	prev := NoBlock
	it := h.listHead

	for it != NoBlock {
		if block < it {
			h.setNextFree(block, it)
			h.setPrevFree(block, prev)

			if prev != NoBlock {
				h.setNextFree(prev, block)
			} else {
				h.listHead = block
			}

			h.setPrevFree(it, block)
			break
		}
		prev = it
		it = h.nextFree(it)
	}

	if it == NoBlock && prev != NoBlock {
		// The block belongs at the end of the list
		h.setNextFree(prev, block)
		h.setPrevFree(block, prev)
		h.setNextFree(block, NoBlock)
	} else if it == NoBlock {
		// The list was empty to begin with
		h.listHead = block
		h.setNextFree(block, NoBlock)
		h.setPrevFree(block, NoBlock)
	}

	h.blocksFreeCount++
	h.blocksFreeSize += h.blockSize(block)
}

// mergeAdjacentBlocks absorbs the block's list neighbors when they are physically
// contiguous with it. Because the list is address-ordered, only the immediate list
// neighbors can ever be physically adjacent, so no wider scan is needed.
func (h *Heap) mergeAdjacentBlocks(block int) {
	next := h.nextFree(block)
	if next != NoBlock && next == block+HeaderSize+h.blockSize(block) {
		h.setBlockSize(block, h.blockSize(block)+HeaderSize+h.blockSize(next))

		afterNext := h.nextFree(next)
		h.setNextFree(block, afterNext)
		if afterNext != NoBlock {
			h.setPrevFree(afterNext, block)
		}

		h.blocksFreeCount--
		h.blocksFreeSize += HeaderSize
	}

	prev := h.prevFree(block)
	if prev != NoBlock && block == prev+HeaderSize+h.blockSize(prev) {
		h.setBlockSize(prev, h.blockSize(prev)+HeaderSize+h.blockSize(block))

		next := h.nextFree(block)
		h.setNextFree(prev, next)
		if next != NoBlock {
			h.setPrevFree(next, prev)
		}

		if h.prevFree(prev) == NoBlock {
			h.listHead = prev
		}

		h.blocksFreeCount--
		h.blocksFreeSize += HeaderSize
	}
}
