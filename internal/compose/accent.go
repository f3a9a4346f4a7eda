package compose

import "strings"

// smallKana attach to the preceding mora rather than forming one of
// their own (きゃ is one mora, not two); sokuon っ/ッ is excluded since
// it counts as its own mora in standard Japanese mora-counting.
var smallKana = map[rune]bool{
	'ゃ': true, 'ゅ': true, 'ょ': true,
	'ぁ': true, 'ぃ': true, 'ぅ': true, 'ぇ': true, 'ぉ': true,
	'ャ': true, 'ュ': true, 'ョ': true,
	'ァ': true, 'ィ': true, 'ゥ': true, 'ェ': true, 'ォ': true,
}

// splitMorae breaks kana text into its mora sequence.
func splitMorae(kana string) []string {
	var morae []string
	for _, r := range kana {
		if smallKana[r] && len(morae) > 0 {
			morae[len(morae)-1] += string(r)
			continue
		}
		morae = append(morae, string(r))
	}
	return morae
}

// renderAccent derives a pitch-accent rendering from a word's kana
// reading and its accent pattern (one downstep position per reading,
// as stored in AccentPattern), following the standard NHK pitch-accent
// convention for Standard Japanese: heiban (k == 0) is low-then-high
// with no drop; atamadaka (k == 1) is high-then-low from the first
// mora; nakadaka/odaka (k >= 2) rises after the first mora and drops
// after the k-th. This isn't ported from any retrieved source — no
// pitch/accent file exists in the pack — so it follows the convention
// directly (documented in DESIGN.md).
func renderAccent(kana string, pattern []int) []AccentPart {
	if len(pattern) == 0 {
		return nil
	}
	morae := splitMorae(kana)
	if len(morae) == 0 {
		return nil
	}
	k := pattern[0]

	high := func(i int) bool {
		switch {
		case k == 0:
			return i > 0
		case k == 1:
			return i == 0
		default:
			return i > 0 && i < k
		}
	}

	var parts []AccentPart
	for i, mora := range morae {
		h := high(i)
		if len(parts) > 0 && parts[len(parts)-1].High == h {
			parts[len(parts)-1].Span += mora
			continue
		}
		parts = append(parts, AccentPart{
			Span:        mora,
			High:        h,
			FirstBorder: i > 0 && high(i-1) != h,
		})
	}
	for i := range parts {
		parts[i].ContinuationBorder = i > 0
	}
	return parts
}

// accentDebugString renders a coarse H/L string, used only by tests to
// assert the high/low sequence without spelling out every span.
func accentDebugString(parts []AccentPart) string {
	var b strings.Builder
	for _, p := range parts {
		for range p.Span {
			if p.High {
				b.WriteByte('H')
			} else {
				b.WriteByte('L')
			}
		}
	}
	return b.String()
}
