package jptext

import "testing"

func TestToHiraganaToKatakanaIdempotent(t *testing.T) {
	cases := []string{"あいうえお", "カタカナ", "ひらがな", "漢字は変わらない"}
	for _, c := range cases {
		got := ToHiragana(ToKatakana(c))
		want := ToHiragana(c)
		if got != want {
			t.Errorf("ToHiragana(ToKatakana(%q)) = %q, want %q", c, got, want)
		}
	}
}

func TestStripEndBoundary(t *testing.T) {
	if got := StripEnd("漢字かな", 100); got != "" {
		t.Errorf("StripEnd with n >= len should return empty string, got %q", got)
	}
	if got := StripEnd("漢字かな", 0); got != "漢字かな" {
		t.Errorf("StripEnd with n=0 should be identity, got %q", got)
	}
	if got := StripEnd("漢字かな", 2); got != "漢字" {
		t.Errorf("StripEnd(%q, 2) = %q, want %q", "漢字かな", got, "漢字")
	}
}

func TestRealStringLenCountsRunesNotBytes(t *testing.T) {
	s := "日本語"
	if n := RealStringLen(s); n != 3 {
		t.Errorf("RealStringLen(%q) = %d, want 3", s, n)
	}
}

func TestIsJapanese(t *testing.T) {
	if !IsJapanese("こんにちは") {
		t.Error("expected hiragana string to be Japanese")
	}
	if IsJapanese("hello") {
		t.Error("expected ascii string to not be Japanese")
	}
}

func TestTextPartsAlternatesKanjiAndKana(t *testing.T) {
	parts := TextParts("前貼り")
	if len(parts) != 2 {
		t.Fatalf("TextParts(%q) = %v, want 2 parts", "前貼り", parts)
	}
	if parts[0] != "前貼" || parts[1] != "り" {
		t.Errorf("unexpected parts: %v", parts)
	}
}

func TestIsRomajiToleratesTrailingDigraph(t *testing.T) {
	if !IsRomaji("ky") {
		t.Error("expected bare digraph 'ky' to be accepted as romaji")
	}
	if !IsRomaji("n") {
		t.Error("expected standalone 'n' to be accepted as romaji")
	}
	if !IsRomaji("gakkoush") {
		t.Error("expected a full word plus a trailing digraph fragment to be accepted as romaji")
	}
	if IsRomaji("ねこ") {
		t.Error("hiragana should not be romaji")
	}
}

func TestIsRomajiRejectsNonMoraLetterRuns(t *testing.T) {
	cases := []string{"bvxq", "xz", "qq"}
	for _, s := range cases {
		if IsRomaji(s) {
			t.Errorf("IsRomaji(%q) = true, want false: doesn't decompose into moras or a tolerated tail", s)
		}
	}
}

func TestIsRomajiAcceptsFullWords(t *testing.T) {
	cases := []string{"neko", "tokyo", "gakkou", "kyou"}
	for _, s := range cases {
		if !IsRomaji(s) {
			t.Errorf("IsRomaji(%q) = false, want true", s)
		}
	}
}

func TestRomajiToHiraganaBasicMoras(t *testing.T) {
	cases := map[string]string{
		"neko":    "ねこ",
		"tokyo":   "ときょ",
		"kyou":    "きょう",
		"gakkou":  "がっこう",
		"konnichiwa": "こんにちわ",
		"shinbun": "しんぶん",
	}
	for in, want := range cases {
		if got := RomajiToHiragana(in); got != want {
			t.Errorf("RomajiToHiragana(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRomajiToHiraganaDoublesSokuonBeforeConsonant(t *testing.T) {
	if got := RomajiToHiragana("kitte"); got != "きって" {
		t.Errorf("RomajiToHiragana(%q) = %q, want %q", "kitte", got, "きって")
	}
}

func TestRomajiToHiraganaPassesThroughUnknownRunes(t *testing.T) {
	if got := RomajiToHiragana("a1b"); got != "あ1b" {
		t.Errorf("RomajiToHiragana(%q) = %q, want %q", "a1b", got, "あ1b")
	}
}
