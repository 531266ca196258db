// Package chunk splits oversized article text into bounded segments at
// natural boundaries so the first segment can be sent to the completion
// service on its own.
package chunk

import "github.com/soal8877-ctrl/referent/internal/budget"

// Split divides text into ordered, non-overlapping segments of at most
// maxChars runes. Concatenating the returned segments reproduces text
// exactly. Within each window the cut prefers the later of the last sentence
// terminator ('.') and the last newline, but only when that point lies past
// the window midpoint; otherwise the window is cut hard at maxChars, possibly
// mid-sentence. A non-positive maxChars means budget.MaxContentChars.
//
// Split is a pure function: identical inputs always produce identical
// boundaries.
func Split(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = budget.MaxContentChars
	}
	runes := []rune(text)
	if len(runes) <= maxChars {
		return []string{text}
	}

	var segments []string
	for offset := 0; offset < len(runes); {
		end := offset + maxChars
		if end > len(runes) {
			end = len(runes)
		}
		window := runes[offset:end]

		cut := lastBoundary(window)
		if cut > maxChars/2 {
			segments = append(segments, string(window[:cut+1]))
			offset += cut + 1
			continue
		}
		segments = append(segments, string(window))
		offset += len(window)
	}
	return segments
}

// lastBoundary returns the index of the later of the last '.' and the last
// '\n' in window, or -1 when neither occurs.
func lastBoundary(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == '.' || window[i] == '\n' {
			return i
		}
	}
	return -1
}
