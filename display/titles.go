package display

import "iter"

// LineBreak is the title used for tables beyond the end of the supplied titles.
const LineBreak = "</br>"

// BlankTitles yields "" forever. It is the default title sequence.
func BlankTitles() iter.Seq[string] {
	return Repeat("")
}

// Repeat yields s forever.
func Repeat(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for yield(s) {
		}
	}
}

// Titles yields the given titles in order and then LineBreak forever.
// Titles are emitted verbatim, so they may contain markup.
func Titles(titles ...string) iter.Seq[string] {
	return Chain(Of(titles...), Repeat(LineBreak))
}

// Of yields the given strings once each. The slice is copied.
func Of(items ...string) iter.Seq[string] {
	items = append([]string(nil), items...)
	return func(yield func(string) bool) {
		for _, s := range items {
			if !yield(s) {
				return
			}
		}
	}
}

// Chain yields every element of each sequence in turn.
func Chain(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for s := range seq {
				if !yield(s) {
					return
				}
			}
		}
	}
}
