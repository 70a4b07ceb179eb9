// SPDX-License-Identifier: MIT

package dictionary

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyMergesProtectedPhrase(t *testing.T) {
	text := "これは東京タワーです。"
	segments := []string{"これは", "東京", "タワーです。"}

	got, merged := Apply(text, []string{"東京タワー"}, segments)

	want := []string{"これは", "東京タワーです。"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply (-want +got):\n%s", diff)
	}
	if merged != 1 {
		t.Errorf("merged = %d, want 1", merged)
	}
}

func TestApplyKeepsBoundaryAtPhraseEdge(t *testing.T) {
	// The boundary sits exactly where the phrase starts; it is not inside.
	text := "これは東京です。"
	segments := []string{"これは", "東京です。"}

	got, merged := Apply(text, []string{"東京"}, segments)

	if diff := cmp.Diff(segments, got); diff != "" {
		t.Errorf("Apply (-want +got):\n%s", diff)
	}
	if merged != 0 {
		t.Errorf("merged = %d, want 0", merged)
	}
}

func TestApplyMultipleOccurrences(t *testing.T) {
	text := "abcxabcx"
	segments := []string{"ab", "cx", "ab", "cx"}

	got, merged := Apply(text, []string{"abc"}, segments)

	want := []string{"abcx", "abcx"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply (-want +got):\n%s", diff)
	}
	if merged != 2 {
		t.Errorf("merged = %d, want 2", merged)
	}
}

func TestApplyNoMatches(t *testing.T) {
	segments := []string{"水と", "油"}
	got, merged := Apply("水と油", []string{"東京タワー"}, segments)

	if diff := cmp.Diff(segments, got); diff != "" {
		t.Errorf("Apply (-want +got):\n%s", diff)
	}
	if merged != 0 {
		t.Errorf("merged = %d, want 0", merged)
	}
}

func TestApplyPreservesText(t *testing.T) {
	text := "東京タワーと東京スカイツリー"
	segments := []string{"東京", "タワーと", "東京", "スカイ", "ツリー"}

	got, _ := Apply(text, []string{"東京タワー", "スカイツリー"}, segments)

	if joined := strings.Join(got, ""); joined != text {
		t.Errorf("output does not concatenate to input: %q", joined)
	}
}
