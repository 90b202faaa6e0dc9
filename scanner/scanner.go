// Package scanner provides quote- and brace-aware scanning for pixel
// description instructions. It encapsulates the tracking of single/double
// quoted spans and {expression} nesting, eliminating the need for every
// splitter to re-implement this logic.
package scanner

// Scanner iterates byte-by-byte over instruction text, tracking quoted
// spans and {} nesting depth. Callers check Structural() instead of
// maintaining their own inQuotes/braceDepth state.
//
// A quote toggles only when it matches the currently open kind and is not
// preceded by a backslash. Braces count only outside quotes; an unbalanced
// closing brace clamps depth at zero instead of going negative.
type Scanner struct {
	src     string
	pos     int
	inQuote bool
	quoteCh byte
	depth   int
}

// New creates a Scanner for the given instruction text.
// Call Next() to advance to the first byte.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: -1}
}

// Next advances to the next byte, updating quote and brace state.
// Returns the byte and true, or (0, false) at end of input.
func (s *Scanner) Next() (byte, bool) {
	s.pos++
	if s.pos >= len(s.src) {
		return 0, false
	}
	ch := s.src[s.pos]

	switch {
	case (ch == '"' || ch == '\'') && !s.escapedQuote():
		if !s.inQuote {
			s.inQuote = true
			s.quoteCh = ch
		} else if ch == s.quoteCh {
			s.inQuote = false
			s.quoteCh = 0
		}
	case ch == '{' && !s.inQuote:
		s.depth++
	case ch == '}' && !s.inQuote:
		if s.depth > 0 {
			s.depth--
		}
	}
	return ch, true
}

// escapedQuote reports whether the byte at the current position is
// preceded by a backslash in the raw text.
func (s *Scanner) escapedQuote() bool {
	return s.pos > 0 && s.src[s.pos-1] == '\\'
}

// InQuote reports whether the current position is inside a quoted span.
func (s *Scanner) InQuote() bool { return s.inQuote }

// Depth returns the current {} nesting depth.
func (s *Scanner) Depth() int { return s.depth }

// Structural reports whether a delimiter at the current position would be
// structural: outside all quotes and at brace depth zero.
func (s *Scanner) Structural() bool { return !s.inQuote && s.depth == 0 }

// Pos returns the current byte offset (the position of the last byte
// returned by Next). Returns -1 before the first call to Next.
func (s *Scanner) Pos() int { return s.pos }

// Src returns the full text being scanned.
func (s *Scanner) Src() string { return s.src }

// Peek returns the next byte without advancing, or (0, false) at end.
func (s *Scanner) Peek() (byte, bool) {
	if s.pos+1 >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos+1], true
}

// Split cuts src at every occurrence of sep that is outside quotes and at
// brace depth zero. The separator bytes themselves are dropped. No
// trimming or filtering is applied; callers decide what to do with empty
// pieces.
func Split(src string, sep byte) []string {
	var parts []string
	start := 0
	sc := New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if ch == sep && sc.Structural() {
			parts = append(parts, src[start:sc.Pos()])
			start = sc.Pos() + 1
		}
	}
	parts = append(parts, src[start:])
	return parts
}

// IndexTopLevel returns the byte offset of the first occurrence of target
// at or after from that sits outside quotes and at brace depth zero, or -1.
func IndexTopLevel(src string, target byte, from int) int {
	sc := New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.Pos() >= from && ch == target && sc.Structural() {
			return sc.Pos()
		}
	}
	return -1
}

// Spans returns the [start, end) offsets of every top-level {...} span in
// src, including the braces. Nested braces extend the span; spans inside
// quotes are ignored.
func Spans(src string) [][2]int {
	var spans [][2]int
	start := -1
	sc := New(src)
	for ch, ok := sc.Next(); ok; ch, ok = sc.Next() {
		if sc.InQuote() {
			continue
		}
		if ch == '{' && sc.Depth() == 1 && start < 0 {
			start = sc.Pos()
		} else if ch == '}' && sc.Depth() == 0 && start >= 0 {
			spans = append(spans, [2]int{start, sc.Pos() + 1})
			start = -1
		}
	}
	return spans
}
