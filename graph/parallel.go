package graph

// Splits the vertex range into contiguous chunks, one per thread, and runs the applicator on each chunk concurrently.
// Returns the sum of the per-chunk results. With threads <= 1 (or a tiny graph) runs inline.
func (g *Graph) NodeParallelFor(threads int, applicator func(start, end uint32) (accumulated int)) (accumulator int) {
	n := uint32(len(g.Vertices))
	if threads <= 1 || n < uint32(threads)*MIN_CHUNK {
		return applicator(0, n)
	}
	res := make(chan int, threads)
	chunk := (n + uint32(threads) - 1) / uint32(threads)
	for t := 0; t < threads; t++ {
		start := uint32(t) * chunk
		end := start + chunk
		if end > n {
			end = n
		}
		go func(start, end uint32) {
			if start >= end {
				res <- 0
				return
			}
			res <- applicator(start, end)
		}(start, end)
	}
	for t := 0; t < threads; t++ {
		accumulator += <-res
	}
	return accumulator
}

// Below this many vertices per thread, the goroutine overhead is not worth it.
var MIN_CHUNK = uint32(256)
