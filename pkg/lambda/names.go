package lambda

// nameAt returns the i-th name of the sequence a, b, ..., z, aa, ab, ...,
// az, ba, ..., zz, aaa, ...
func nameAt(i int) string {
	var buf []byte
	for n := i + 1; n > 0; n = (n - 1) / 26 {
		buf = append(buf, byte('a'+(n-1)%26))
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}
