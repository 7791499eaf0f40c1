package search

// ContextWindow returns up to size lines before and after lines[index].
// Both slices are clamped at the file boundaries, never padded, and never
// share a backing array with lines.
func ContextWindow(lines []string, index, size int) (pre, post []string) {
	if index < 0 || index >= len(lines) {
		return []string{}, []string{}
	}
	if size < 0 {
		size = 0
	}

	start := max(0, index-size)
	end := min(len(lines), index+size+1)

	pre = append([]string{}, lines[start:index]...)
	if index+1 < end {
		post = append([]string{}, lines[index+1:end]...)
	} else {
		post = []string{}
	}
	return pre, post
}
