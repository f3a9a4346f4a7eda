package furigana

import (
	"strings"
	"testing"

	"github.com/jisho-engine/dictsearch/internal/jptext"
)

func stubRetrieve(readings map[string][2][]string) ReadingRetriever {
	return func(literal string) ([]string, []string, bool) {
		v, ok := readings[literal]
		if !ok {
			return nil, nil, false
		}
		return v[0], v[1], true
	}
}

func TestGenerateMultiKanjiCompound(t *testing.T) {
	retrieve := stubRetrieve(map[string][2][]string{
		"自": {{"みずか.ら"}, {"じ"}},
		"動": {{"うご.く"}, {"どう"}},
		"販": {{}, {"はん"}},
		"売": {{"う.る"}, {"ばい"}},
		"機": {{"はた"}, {"き"}},
	})

	got := Generate(retrieve, "自動販売機", "じどうはんばいき")
	want := "[自動販売機|じ|どう|はん|ばい|き]"
	if got != want {
		t.Errorf("Generate() = %q, want %q", got, want)
	}
}

func TestGenerateKanaAndKanjiMix(t *testing.T) {
	retrieve := stubRetrieve(map[string][2][]string{
		"貼": {{"は.る"}, {"ちょう"}},
	})
	got := Generate(retrieve, "前貼り", "まえばり")
	// "前貼" is one two-kanji run; "前" has no stub reading, so the run
	// cannot be split per kanji and is emitted as a single block.
	if !strings.Contains(got, "り") {
		t.Errorf("Generate() = %q, expected trailing verbatim kana 'り'", got)
	}
	parsed, err := Parse(got)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	var kana strings.Builder
	for _, p := range parsed {
		kana.WriteString(p.Kana)
	}
	if jptext.ToHiragana(kana.String()) != jptext.ToHiragana("まえばり") {
		t.Errorf("round trip kana mismatch: got %q", kana.String())
	}
}

func TestGenerateFallsBackOnAlignmentFailure(t *testing.T) {
	retrieve := stubRetrieve(map[string][2][]string{})
	got := Generate(retrieve, "難解", "なんかい")
	want := "[難解|なんかい]"
	if got != want {
		t.Errorf("Generate() = %q, want fallback %q", got, want)
	}
}

func TestParseEncodeRoundTrip(t *testing.T) {
	parts := []Part{
		{Kanji: "自", Kana: "じ"},
		{Kanji: "動", Kana: "どう"},
		{Kana: "り"},
	}
	encoded := Encode(parts)
	decoded, err := Parse(encoded)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(decoded) != len(parts) {
		t.Fatalf("decoded %d parts, want %d", len(decoded), len(parts))
	}
	for i := range parts {
		if decoded[i] != parts[i] {
			t.Errorf("part %d = %+v, want %+v", i, decoded[i], parts[i])
		}
	}
}

func TestParseAcceptsSingleBlockFallbackShape(t *testing.T) {
	decoded, err := Parse("[難解|なんかい]")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Kanji != "難解" || decoded[0].Kana != "なんかい" {
		t.Errorf("unexpected decode: %+v", decoded)
	}
}

func TestGenerateRoundTripInvariant(t *testing.T) {
	cases := []struct{ kanji, kana string }{
		{"自動販売機", "じどうはんばいき"},
		{"前貼り", "まえばり"},
		{"難解", "なんかい"},
	}
	retrieve := stubRetrieve(map[string][2][]string{
		"自": {{"みずか.ら"}, {"じ"}},
		"動": {{"うご.く"}, {"どう"}},
		"販": {{}, {"はん"}},
		"売": {{"う.る"}, {"ばい"}},
		"機": {{"はた"}, {"き"}},
		"貼": {{"は.る"}, {"ちょう"}},
	})
	for _, c := range cases {
		encoded := Generate(retrieve, c.kanji, c.kana)
		parsed, err := Parse(encoded)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", encoded, err)
		}
		var kana strings.Builder
		for _, p := range parsed {
			kana.WriteString(p.Kana)
		}
		if jptext.ToHiragana(kana.String()) != jptext.ToHiragana(c.kana) {
			t.Errorf("%s/%s: round trip kana = %q, want %q", c.kanji, c.kana, kana.String(), c.kana)
		}
	}
}
