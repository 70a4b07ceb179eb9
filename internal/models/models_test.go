// SPDX-License-Identifier: MIT

package models

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ManuGH/kugiri/internal/segment"
)

func TestByNameReturnsSharedModel(t *testing.T) {
	m1, err := ByName(Japanese)
	if err != nil {
		t.Fatalf("ByName(ja): %v", err)
	}
	m2, err := ByName(Japanese)
	if err != nil {
		t.Fatalf("ByName(ja) second call: %v", err)
	}

	if reflect.ValueOf(m1).Pointer() != reflect.ValueOf(m2).Pointer() {
		t.Error("expected the same model instance on repeated calls")
	}
	if len(m1) == 0 {
		t.Error("bundled japanese model is empty")
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("klingon"); err == nil {
		t.Fatal("expected error for unknown model name")
	}
}

func TestAllBundledModelsLoad(t *testing.T) {
	for _, name := range Names() {
		m, err := ByName(name)
		if err != nil {
			t.Errorf("ByName(%s): %v", name, err)
			continue
		}
		if len(m) == 0 {
			t.Errorf("model %s has no features", name)
		}
	}
}

func TestJapaneseSegmentation(t *testing.T) {
	m, err := ByName(Japanese)
	if err != nil {
		t.Fatalf("ByName(ja): %v", err)
	}

	cases := []struct {
		input string
		want  []string
	}{
		{"これはテストです。", []string{"これは", "テストです。"}},
		{"今日は天気です。", []string{"今日は", "天気です。"}},
		{"PythonとJavaScriptとGolang", []string{"Pythonと", "JavaScriptと", "Golang"}},
		{"これはテストです。今日は晴天です。", []string{"これは", "テストです。", "今日は", "晴天です。"}},
	}
	for _, tc := range cases {
		got := segment.Parse(m, tc.input)
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tc.input, diff)
		}
	}

	// A huge threshold never splits.
	got := segment.ParseWithThreshold(m, "これはテストです。", math.MaxInt32)
	if diff := cmp.Diff([]string{"これはテストです。"}, got); diff != "" {
		t.Errorf("huge threshold (-want +got):\n%s", diff)
	}
}

func TestChineseSegmentation(t *testing.T) {
	for _, name := range []string{SimplifiedChinese, TraditionalChinese} {
		m, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		got := segment.Parse(m, "今天是晴天。")
		want := []string{"今天", "是", "晴天。"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: Parse mismatch (-want +got):\n%s", name, diff)
		}
	}
}

func TestThaiModelPreservesInput(t *testing.T) {
	m, err := ByName(Thai)
	if err != nil {
		t.Fatalf("ByName(th): %v", err)
	}

	input := "สวัสดีครับ"
	got := segment.Parse(m, input)
	if joined := strings.Join(got, ""); joined != input {
		t.Errorf("phrases do not concatenate to input: %q != %q", joined, input)
	}
}

func TestByLanguage(t *testing.T) {
	cases := []struct {
		tag  string
		want string
	}{
		{"ja", Japanese},
		{"ja-JP", Japanese},
		{"th", Thai},
		{"zh-CN", SimplifiedChinese},
		{"zh-Hans", SimplifiedChinese},
		{"zh-TW", TraditionalChinese},
		{"zh-Hant-HK", TraditionalChinese},
	}
	for _, tc := range cases {
		_, name, err := ByLanguage(tc.tag)
		if err != nil {
			t.Errorf("ByLanguage(%s): %v", tc.tag, err)
			continue
		}
		if name != tc.want {
			t.Errorf("ByLanguage(%s) = %s, want %s", tc.tag, name, tc.want)
		}
	}

	if _, _, err := ByLanguage("not a tag!!"); err == nil {
		t.Error("expected error for malformed tag")
	}
}
