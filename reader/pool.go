package reader

import "sync"

const (
	// Accumulator limits bound the memory retained across line and
	// whole-stream reads.
	accMaxCap  = 32 * 1024 // max rune elements
	accInitCap = 256
)

// accumulator pool shared by ReadLine and ReadToEnd
var accPool = sync.Pool{
	New: func() any {
		buf := make([]rune, 0, accInitCap)
		return &buf
	},
}

// getAccumulator returns a cleared accumulator with room for hint runes.
// Requests beyond the retention cap bypass the pool entirely so one huge
// read never pins memory for later small ones.
func getAccumulator(hint int) *[]rune {
	if hint > accMaxCap {
		buf := make([]rune, 0, hint)
		return &buf
	}
	acc := accPool.Get().(*[]rune)
	if cap(*acc) < hint {
		*acc = make([]rune, 0, hint)
	}
	return acc
}

func putAccumulator(acc *[]rune) {
	if acc == nil || cap(*acc) > accMaxCap {
		return // reject oversized
	}
	*acc = (*acc)[:0]
	accPool.Put(acc)
}
