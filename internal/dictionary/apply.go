// SPDX-License-Identifier: MIT

package dictionary

import "strings"

// Apply removes machine boundaries that fall strictly inside an occurrence
// of a protected phrase. segments must concatenate to text. It returns the
// merged segmentation and the number of boundaries removed; when no phrase
// matches, segments is returned unchanged.
func Apply(text string, protected []string, segments []string) ([]string, int) {
	if len(protected) == 0 || len(segments) < 2 {
		return segments, 0
	}

	// Byte offsets of the boundaries between segments.
	boundaries := make([]int, 0, len(segments)-1)
	off := 0
	for _, seg := range segments[:len(segments)-1] {
		off += len(seg)
		boundaries = append(boundaries, off)
	}

	blocked := make(map[int]bool)
	for _, phrase := range protected {
		if phrase == "" {
			continue
		}
		for start := 0; ; {
			i := strings.Index(text[start:], phrase)
			if i < 0 {
				break
			}
			s := start + i
			e := s + len(phrase)
			for _, b := range boundaries {
				if b > s && b < e {
					blocked[b] = true
				}
			}
			start = e
		}
	}
	if len(blocked) == 0 {
		return segments, 0
	}

	out := make([]string, 0, len(segments)-len(blocked))
	var buf strings.Builder
	off = 0
	for i, seg := range segments {
		buf.WriteString(seg)
		off += len(seg)
		if i == len(segments)-1 || !blocked[off] {
			out = append(out, buf.String())
			buf.Reset()
		}
	}

	return out, len(blocked)
}
