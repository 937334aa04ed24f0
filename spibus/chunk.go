package spibus

// Chunks splits p into consecutive sub-slices of at most size bytes. The
// chunks alias p. size <= 0 returns p as a single chunk.
func Chunks(p []byte, size int) [][]byte {
	if len(p) == 0 {
		return nil
	}
	if size <= 0 || len(p) <= size {
		return [][]byte{p}
	}
	out := make([][]byte, 0, (len(p)+size-1)/size)
	for len(p) > size {
		out = append(out, p[:size:size])
		p = p[size:]
	}
	return append(out, p)
}
