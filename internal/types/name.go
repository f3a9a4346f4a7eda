package types

// Name is a single proper-noun entry (JMnedict-simplified shape): a
// person, place, company or other named entity with a kana/kanji
// reading and a set of English transliterations/glosses.
type Name struct {
	Sequence int32

	Reading Reading

	// Tags classifies the kind of name this is (e.g. "surname", "place",
	// "company", "given"), taken verbatim from the JMnedict name_type
	// field; spec.md doesn't define a closed enum for these so they're
	// kept as the source vocabulary.
	Tags []string

	Translations []string
}
