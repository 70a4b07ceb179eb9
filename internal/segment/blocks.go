// SPDX-License-Identifier: MIT

package segment

import (
	"fmt"
	"sort"
)

// invalidFeature marks a context position that falls outside the input.
const invalidFeature = "▔" // U+2594 UPPER ONE EIGHTH BLOCK

// blockFeature returns the rune at index and its Unicode block feature.
// Positions outside the slice yield an empty rune string and invalidFeature,
// so window features near the edges of the input stay well-defined.
func blockFeature(runes []rune, index int) (string, string) {
	if index >= len(runes) {
		return "", invalidFeature
	}

	r := runes[index]
	pos := sort.Search(len(unicodeBlockStarts), func(i int) bool {
		return unicodeBlockStarts[i] > r
	})

	return string(r), fmt.Sprintf("%03d", pos)
}
