package arena

// DupString copies s into the arena and returns the copy.
// The length travels with the slice, so no terminator is written.
func DupString(a *Arena[byte], s string) ([]byte, error) {
	dst, err := a.Alloc(len(s), 1)
	if err != nil {
		return nil, err
	}
	copy(dst, s)
	return dst, nil
}
