package utils

// Initially inspired from https://github.com/kelindar/bitmap Thank you for using the MIT license!
// Here it marks which palette colours a vertex's neighbours hold.

type Bitmap []uint64

// Inline-able, returns false if out of range.
func (bitmap *Bitmap) QuickSet(x uint32) bool {
	idx := int(x >> 6)
	if idx >= len(*bitmap) {
		return false
	}
	(*bitmap)[idx] |= (1 << (x % 64))
	return true
}

// Set sets the bit x in the bitmap and grows it if necessary.
func (bitmap *Bitmap) Set(x uint32) {
	idx := int(x >> 6)
	if idx >= len(*bitmap) {
		bitmap.grow(idx)
	}
	(*bitmap)[idx] |= (1 << (x % 64))
}

// Out of range bits are unset.
func (bitmap Bitmap) IsSet(x uint32) bool {
	idx := int(x >> 6)
	if idx >= len(bitmap) {
		return false
	}
	return bitmap[idx]&(1<<(x%64)) != 0
}

// Zeros all bits in the bitmap.
func (bitmap *Bitmap) Zeroes() {
	for i := 0; i < len(*bitmap); i++ {
		(*bitmap)[i] = 0
	}
}

// Grow grows the bitmap size until we reach the desired bit.
func (bitmap *Bitmap) Grow(desiredBit uint32) {
	idx := int(desiredBit >> 6)
	if idx >= len(*bitmap) {
		bitmap.grow(idx)
	}
}

// Grow grows the size of the bitmap until we reach the desired block offset
func (bitmap *Bitmap) grow(idx int) {
	// If there's space, resize the slice without copying.
	if cap(*bitmap) > idx {
		*bitmap = (*bitmap)[:idx+1]
		return
	}
	old := *bitmap
	*bitmap = make(Bitmap, idx+1, resize(cap(old), idx+1))
	copy(*bitmap, old)
}

// resize calculates the new required capacity and a new index
func resize(capacity, v int) int {
	const threshold = 256

	if v < threshold {
		return int(RoundUpPow(uint64(v + 1)))
	}

	if capacity < threshold {
		capacity = threshold
	}

	for 0 < capacity && capacity < (v+1) {
		capacity += (capacity + 3*threshold) / 4
	}
	return capacity
}
