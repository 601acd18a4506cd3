package engine

// extractExcerpt builds the excerpt for a match: up to lines lines of
// context before the start offset and after the end offset, plus a copy
// of the matched bytes themselves. The context slices are copied out of
// content so they do not share its backing array.
func extractExcerpt(content []byte, start, end, lines int) Excerpt {
	ex := Excerpt{
		Matching: append([]byte(nil), content[start:end]...),
	}
	if lines <= 0 {
		return ex
	}
	if b := contextBefore(content, start, lines); len(b) > 0 {
		ex.Before = append([]byte(nil), b...)
	}
	if a := contextAfter(content, end, lines); len(a) > 0 {
		ex.After = append([]byte(nil), a...)
	}
	return ex
}

// contextBefore walks backward from start counting newlines until it
// has seen lines complete lines, or hits the start of the content.
func contextBefore(content []byte, start, lines int) []byte {
	if start <= 0 {
		return nil
	}

	pos := start - 1
	found := 0
	for pos >= 0 {
		if content[pos] == '\n' {
			found++
			if found == lines {
				for pos > 0 {
					pos--
					if content[pos] == '\n' {
						return content[pos+1 : start]
					}
				}
				return content[:start]
			}
		}
		pos--
	}
	return content[:start]
}

// contextAfter walks forward from end counting newlines until it has
// collected lines complete lines, or hits the end of the content.
func contextAfter(content []byte, end, lines int) []byte {
	if end >= len(content) {
		return nil
	}

	// A newline at end belongs to the match line, skip it.
	start := end
	if content[end] == '\n' {
		start = end + 1
		if start >= len(content) {
			return nil
		}
	}

	found := 0
	for pos := start; pos < len(content); pos++ {
		if content[pos] == '\n' {
			found++
			if found == lines {
				return content[start : pos+1]
			}
		}
	}
	return content[start:]
}
