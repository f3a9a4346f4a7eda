// Package query turns a raw user query string into a structured Query,
// per spec.md §4.4: language-prefix stripping, hashtag extraction,
// truncation, language detection and form detection.
package query

import (
	"strings"

	"github.com/jisho-engine/dictsearch/internal/types"
)

// SearchTarget is the #word/#kanji/#sentence/#name tag family.
type SearchTarget int

const (
	TargetWords SearchTarget = iota
	TargetKanji
	TargetSentences
	TargetNames
)

// TagKind discriminates the Tag union.
type TagKind int

const (
	TagSearchTarget TagKind = iota
	TagPartOfSpeech
	TagMisc
	TagJLPT
)

// Tag is one parsed hashtag token.
type Tag struct {
	Kind   TagKind
	Target SearchTarget
	Pos    types.PosSimple
	JLPT   int // 1..5, valid only when Kind == TagJLPT
}

// IsEmptyAllowed reports whether this tag alone justifies an empty
// query body (spec.md §4.4 step 4): currently only JLPT tags.
func (t Tag) IsEmptyAllowed() bool { return t.Kind == TagJLPT }

// searchTargetNames maps the plural-accepting #word/#kanji/#sentence/#name
// family (spec.md §6).
var searchTargetNames = map[string]SearchTarget{
	"word": TargetWords, "words": TargetWords,
	"kanji": TargetKanji,
	"sentence": TargetSentences, "sentences": TargetSentences,
	"name": TargetNames, "names": TargetNames,
}

var miscTagNames = map[string]struct{}{
	"abbreviation": {}, "abbrev": {},
}

// parseTag parses one lowercase, '#'-stripped hashtag body into a Tag.
// Returns ok=false for anything unrecognized, which callers silently drop.
func parseTag(body string) (Tag, bool) {
	if body == "" {
		return Tag{}, false
	}

	if target, ok := searchTargetNames[body]; ok {
		return Tag{Kind: TagSearchTarget, Target: target}, true
	}

	if _, ok := miscTagNames[body]; ok {
		return Tag{Kind: TagMisc}, true
	}

	if len(body) == 2 && body[0] == 'n' {
		if n := int(body[1] - '0'); body[1] >= '1' && body[1] <= '5' {
			return Tag{Kind: TagJLPT, JLPT: n}, true
		}
	}

	if pos, ok := types.ParsePosSimple(body); ok {
		return Tag{Kind: TagPartOfSpeech, Pos: pos}, true
	}

	return Tag{}, false
}

// extractTags splits whitespace-delimited tokens into tags and the
// remaining query body, mirroring partition_tags_query: any token
// starting with '#' is a tag candidate; unparseable candidates are
// dropped silently, and the body is the remaining tokens rejoined
// with single spaces.
func extractTags(q string) (body string, tags []Tag) {
	fields := strings.Fields(q)
	var bodyTokens []string
	for _, f := range fields {
		if strings.HasPrefix(f, "#") {
			if tag, ok := parseTag(strings.ToLower(f[1:])); ok {
				tags = append(tags, tag)
			}
			continue
		}
		bodyTokens = append(bodyTokens, f)
	}
	return strings.Join(bodyTokens, " "), tags
}
