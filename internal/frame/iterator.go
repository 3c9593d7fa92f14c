package frame

// Iterator is a finite, forward-only, non-restartable view over a
// CoreFrame for legacy consumers. It materializes one CoreBar per Next
// call from the underlying columnar buffers without copying them. It must
// never be used as an internal computation path — only as an adapter for
// callers that still expect row-at-a-time access.
type Iterator struct {
	frame *CoreFrame
	pos   int
}

// NewIterator returns an Iterator over frame, starting before the first row.
func NewIterator(f *CoreFrame) *Iterator {
	return &Iterator{frame: f}
}

// Next advances the iterator and reports whether a row was available.
func (it *Iterator) Next() (CoreBar, bool) {
	if it.frame == nil || it.pos >= it.frame.Len() {
		return CoreBar{}, false
	}
	bar := it.frame.At(it.pos)
	it.pos++
	return bar, true
}

// Remaining reports how many rows have not yet been consumed.
func (it *Iterator) Remaining() int {
	if it.frame == nil {
		return 0
	}
	return it.frame.Len() - it.pos
}
