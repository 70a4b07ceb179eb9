// SPDX-License-Identifier: MIT

package segment

import "strings"

// DefaultThreshold is the boundary score a feature sum must exceed for a
// phrase break. Trained models are calibrated against this value.
const DefaultThreshold = 1000

// Parse splits input into phrases using model and DefaultThreshold.
// The concatenation of the returned phrases always equals input.
func Parse(m Model, input string) []string {
	return ParseWithThreshold(m, input, DefaultThreshold)
}

// ParseWithThreshold splits input into phrases using model and the given
// threshold. Larger thresholds produce fewer, longer phrases; an input of one
// rune or less is returned unchanged as a single element.
func ParseWithThreshold(m Model, input string, threshold int) []string {
	runes := []rune(input)
	if len(runes) <= 1 {
		return []string{input}
	}

	out := make([]string, 0, 8)

	var buf strings.Builder
	buf.WriteRune(runes[0])

	// Previous boundary decisions, seeded unknown.
	p1, p2, p3 := "U", "U", "U"

	// Character and block features for the window i-3 .. i+2.
	w1, b1 := "", invalidFeature
	w2, b2 := "", invalidFeature
	w3, b3 := blockFeature(runes, 0)
	w4, b4 := blockFeature(runes, 1)
	w5, b5 := blockFeature(runes, 2)

	key := make([]byte, 0, 24)

	for i := 1; i < len(runes); i++ {
		w6, b6 := blockFeature(runes, i+2)

		score := featureScore(m, key, w1, w2, w3, w4, w5, w6, b1, b2, b3, b4, b5, b6, p1, p2, p3)

		if score > threshold {
			out = append(out, buf.String())
			buf.Reset()
		}
		buf.WriteString(w4)

		p1 = p2
		p2 = p3
		if score > 0 {
			p3 = "B"
		} else {
			p3 = "O"
		}

		w1, w2, w3, w4, w5 = w2, w3, w4, w5, w6
		b1, b2, b3, b4, b5 = b2, b3, b4, b5, b6
	}

	if buf.Len() > 0 {
		out = append(out, buf.String())
	}

	return out
}

// featureScore sums the model scores of all window features at one boundary
// candidate. key is a scratch buffer reused across lookups to keep the hot
// loop allocation-free.
func featureScore(m Model, key []byte, w1, w2, w3, w4, w5, w6, b1, b2, b3, b4, b5, b6, p1, p2, p3 string) int {
	score := 0

	add := func(parts ...string) {
		key = key[:0]
		for _, p := range parts {
			key = append(key, p...)
		}
		score += m[string(key)]
	}

	// Unigrams and bigrams of previous decisions.
	add("UP1:", p1)
	add("UP2:", p2)
	add("UP3:", p3)
	add("BP1:", p1, p2)
	add("BP2:", p2, p3)
	// Unigrams, bigrams and trigrams of characters.
	add("UW1:", w1)
	add("UW2:", w2)
	add("UW3:", w3)
	add("UW4:", w4)
	add("UW5:", w5)
	add("UW6:", w6)
	add("BW1:", w2, w3)
	add("BW2:", w3, w4)
	add("BW3:", w4, w5)
	add("TW1:", w1, w2, w3)
	add("TW2:", w2, w3, w4)
	add("TW3:", w3, w4, w5)
	add("TW4:", w4, w5, w6)
	// Unigrams, bigrams and trigrams of Unicode blocks.
	add("UB1:", b1)
	add("UB2:", b2)
	add("UB3:", b3)
	add("UB4:", b4)
	add("UB5:", b5)
	add("UB6:", b6)
	add("BB1:", b2, b3)
	add("BB2:", b3, b4)
	add("BB3:", b4, b5)
	add("TB1:", b1, b2, b3)
	add("TB2:", b2, b3, b4)
	add("TB3:", b3, b4, b5)
	add("TB4:", b4, b5, b6)
	// Combinations of decisions and blocks.
	add("UQ1:", p1, b1)
	add("UQ2:", p2, b2)
	add("UQ3:", p3, b3)
	add("BQ1:", p2, b2, b3)
	add("BQ2:", p2, b3, b4)
	add("BQ3:", p3, b2, b3)
	add("BQ4:", p3, b3, b4)
	add("TQ1:", p2, b1, b2, b3)
	add("TQ2:", p2, b2, b3, b4)
	add("TQ3:", p3, b1, b2, b3)
	add("TQ4:", p3, b2, b3, b4)

	return score
}
