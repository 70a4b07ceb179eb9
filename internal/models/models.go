// SPDX-License-Identifier: MIT

// Package models ships the trained segmentation models bundled with the
// binary and resolves BCP 47 language tags to them.
package models

import (
	"bytes"
	"embed"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/text/language"

	"github.com/ManuGH/kugiri/internal/segment"
)

//go:embed data/*.json
var modelFS embed.FS

// Bundled model names, also valid values for the API "lang" parameter.
const (
	Japanese           = "ja"
	Thai               = "th"
	SimplifiedChinese  = "zh-hans"
	TraditionalChinese = "zh-hant"
)

var (
	mu     sync.Mutex
	loaded = map[string]segment.Model{}

	// matcher resolves arbitrary tags ("ja-JP", "zh-TW") onto bundled models.
	// Order matters: the first tag is the fallback for undecidable matches.
	matchNames = []string{Japanese, Thai, SimplifiedChinese, TraditionalChinese}
	matcher    = language.NewMatcher([]language.Tag{
		language.Japanese,
		language.Thai,
		language.SimplifiedChinese,
		language.TraditionalChinese,
	})
)

// Names returns the bundled model names in sorted order.
func Names() []string {
	out := make([]string, len(matchNames))
	copy(out, matchNames)
	sort.Strings(out)
	return out
}

// ByName returns the bundled model with the given name. The model is parsed
// on first use and shared afterwards: repeated calls return the same map.
func ByName(name string) (segment.Model, error) {
	mu.Lock()
	defer mu.Unlock()

	if m, ok := loaded[name]; ok {
		return m, nil
	}

	raw, err := modelFS.ReadFile("data/" + name + ".json")
	if err != nil {
		return nil, fmt.Errorf("no bundled model %q", name)
	}
	m, err := segment.LoadModel(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("bundled model %q: %w", name, err)
	}

	loaded[name] = m
	return m, nil
}

// ByLanguage resolves a BCP 47 language tag to the closest bundled model and
// returns the canonical model name alongside it. Unparseable or unsupported
// tags return an error instead of silently falling back.
func ByLanguage(tag string) (segment.Model, string, error) {
	parsed, err := language.Parse(tag)
	if err != nil {
		return nil, "", fmt.Errorf("invalid language tag %q: %w", tag, err)
	}

	_, idx, conf := matcher.Match(parsed)
	if conf == language.No {
		return nil, "", fmt.Errorf("no model for language %q", tag)
	}

	name := matchNames[idx]
	m, err := ByName(name)
	if err != nil {
		return nil, "", err
	}
	return m, name, nil
}
