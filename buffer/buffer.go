package buffer

// DataBuffer denotes a generic ring buffer over float64 samples, keeping the
// last `cap` values
type DataBuffer struct {
	data []float64
	ptr  int
	len  int
	cap  int
}

// NewDataBuffer instantiates a new buffer of given capacity
func NewDataBuffer(cap int) *DataBuffer {
	return &DataBuffer{
		data: make([]float64, cap),
		ptr:  0,
		cap:  cap,
	}
}

// Append adds an element to the end of the buffer, evicting the oldest one
// once the buffer is full
func (b *DataBuffer) Append(v float64) {
	b.data[b.ptr] = v
	b.ptr = (b.ptr + 1) % b.cap
	if b.len < b.cap {
		b.len++
	}
}

// Len returns the number of elements currently held by the buffer
func (b *DataBuffer) Len() int {
	return b.len
}

// Last retrieves the last / current element from the buffer
func (b *DataBuffer) Last() float64 {
	ptr := b.ptr - 1
	if ptr < 0 {
		ptr = b.cap - 1
	}

	return b.data[ptr]
}

// LastN retrieves the last / current n elements from the buffer (oldest
// first), capped at the number of elements appended so far
func (b *DataBuffer) LastN(n int) []float64 {
	if n > b.len {
		n = b.len
	}

	res := make([]float64, n)

	ptr := b.ptr - 1
	for i := 0; i < n; i++ {
		pos := ptr - i
		if pos < 0 {
			pos = b.cap + pos
		}
		res[n-1-i] = b.data[pos]
	}

	return res
}

// Mean returns the arithmetic mean over the last n elements (capped at the
// number of elements appended so far), zero for an empty buffer
func (b *DataBuffer) Mean(n int) float64 {
	values := b.LastN(n)
	if len(values) == 0 {
		return 0.
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}
