package grammar

import (
	"slices"
	"strings"
)

// DefaultDeliminators is the built-in set of word-boundary characters.
const DefaultDeliminators = " \t.():!+,-<=>%&*/;?[]^{|}~\\"

// DeliminatorSet is an immutable set of word-boundary characters.
type DeliminatorSet struct {
	runes []rune
}

// NewDeliminatorSet builds a set from the characters of chars.
func NewDeliminatorSet(chars string) DeliminatorSet {
	return DeliminatorSet{}.With(chars)
}

// DefaultDeliminatorSet returns the set built from DefaultDeliminators.
func DefaultDeliminatorSet() DeliminatorSet {
	return NewDeliminatorSet(DefaultDeliminators)
}

// With returns a set that also contains the characters of chars.
func (d DeliminatorSet) With(chars string) DeliminatorSet {
	out := slices.Clone(d.runes)
	for _, r := range chars {
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	slices.Sort(out)
	return DeliminatorSet{runes: out}
}

// Without returns a set with the characters of chars removed.
func (d DeliminatorSet) Without(chars string) DeliminatorSet {
	out := slices.DeleteFunc(slices.Clone(d.runes), func(r rune) bool {
		return strings.ContainsRune(chars, r)
	})
	return DeliminatorSet{runes: out}
}

// Contains reports whether r is a deliminator.
func (d DeliminatorSet) Contains(r rune) bool {
	_, found := slices.BinarySearch(d.runes, r)
	return found
}

// Len returns the number of characters in the set.
func (d DeliminatorSet) Len() int {
	return len(d.runes)
}

// String returns the characters of the set in code point order.
func (d DeliminatorSet) String() string {
	return string(d.runes)
}
