// Package challenge builds the practice question shown on a topic's
// challenge panel.
//
// Options are not shuffled. They are rotated by an offset derived from the
// topic title, so a topic always presents the same arrangement in every
// session and for every learner, while different topics present different
// arrangements.
package challenge

import (
	"fmt"
	"unicode/utf16"
)

// DefaultOptionCount is the number of options shown when none is configured.
const DefaultOptionCount = 3

// MinOptionCount is the smallest option count that makes a question.
const MinOptionCount = 2

// fillers stand in for missing candidate statements.
var fillers = []string{
	"None of the statements above applies here.",
	"This situation is not covered by the module.",
	"It depends entirely on personal preference.",
}

// Challenge is a generated option set.
type Challenge struct {
	Options      []string
	CorrectIndex int
}

// Seed sums the UTF-16 code units of title.
func Seed(title string) int {
	seed := 0
	for _, u := range utf16.Encode([]rune(title)) {
		seed += int(u)
	}
	return seed
}

// Generate arranges candidates for display. candidates[0] is the correct
// statement. Missing statements are padded with deterministic fillers and
// extra ones are dropped, so the result always has optionCount entries.
func Generate(title string, candidates []string, optionCount int) Challenge {
	if optionCount < MinOptionCount {
		optionCount = DefaultOptionCount
	}

	pool := make([]string, 0, optionCount)
	for _, c := range candidates {
		if len(pool) == optionCount {
			break
		}
		pool = append(pool, c)
	}
	for i := 0; len(pool) < optionCount; i++ {
		pool = append(pool, filler(i))
	}

	rotation := Seed(title) % optionCount
	options := make([]string, optionCount)
	for i := range options {
		options[i] = pool[(i+rotation)%optionCount]
	}

	return Challenge{
		Options:      options,
		CorrectIndex: (optionCount - rotation) % optionCount,
	}
}

// IsCorrect reports whether selected is the correct option.
func (c Challenge) IsCorrect(selected int) bool {
	return selected == c.CorrectIndex
}

// Valid reports whether selected names one of the options.
func (c Challenge) Valid(selected int) bool {
	return selected >= 0 && selected < len(c.Options)
}

func filler(i int) string {
	if i < len(fillers) {
		return fillers[i]
	}
	return fmt.Sprintf("%s (%d)", fillers[i%len(fillers)], i/len(fillers)+1)
}
