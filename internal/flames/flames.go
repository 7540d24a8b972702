// Package flames implements the FLAMES name-compatibility calculation.
// It normalizes two names, cancels the letters they share, and counts out
// the six outcome labels until one remains. Everything in this package is
// pure and safe for concurrent use.
package flames

import "slices"

// Label is one of the six FLAMES outcomes.
type Label string

const (
	Friends   Label = "Friends"
	Lovers    Label = "Lovers"
	Affection Label = "Affection"
	Marriage  Label = "Marriage"
	Enemies   Label = "Enemies"
	Siblings  Label = "Siblings"
)

var labels = []Label{Friends, Lovers, Affection, Marriage, Enemies, Siblings}

// Labels returns the outcome vocabulary in counting order.
func Labels() []Label {
	return slices.Clone(labels)
}

// Valid reports whether l is one of the six outcomes.
func (l Label) Valid() bool {
	return slices.Contains(labels, l)
}

func (l Label) String() string {
	return string(l)
}

// Calculate normalizes both names and resolves them to a label.
func Calculate(name1, name2 string) Label {
	return Resolve(Normalize(name1), Normalize(name2))
}

// Resolve counts out the labels using the number of letters left after
// cancelling a against b. Both names are expected to be normalized.
func Resolve(a, b string) Label {
	return Eliminate(Count(a, b))
}

// Count returns how many letters remain in a and b combined after cancellation.
func Count(a, b string) int {
	ra, rb := Cancel([]rune(a), []rune(b))
	return len(ra) + len(rb)
}

// Eliminate runs the counting-out over the labels for the given count.
// Each round removes the label at (count mod n) - 1 and continues from the
// labels after it, followed by the labels before it. A zero remainder drops
// the last label without rotating.
func Eliminate(count int) Label {
	remaining := Labels()

	for len(remaining) > 1 {
		split := count%len(remaining) - 1
		if split < 0 {
			remaining = remaining[:len(remaining)-1]
			continue
		}

		next := make([]Label, 0, len(remaining)-1)
		next = append(next, remaining[split+1:]...)
		next = append(next, remaining[:split]...)
		remaining = next
	}

	return remaining[0]
}
