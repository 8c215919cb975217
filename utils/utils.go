package utils

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Smash turns "funny characters" (anything remotely tricky to type on a command line)
// into '_', and upper-cases the rest.
func Smash(in string) string {
	var b strings.Builder
	for _, c := range in {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(unicode.ToUpper(c))
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Matchers compare user input to a candidate name, in strictly increasing order of
// desperation.
var Matchers = []func(input, candidate string) bool{
	func(i, c string) bool { return i == c },
	func(i, c string) bool { return strings.EqualFold(i, c) },
	func(i, c string) bool { return Smash(i) == Smash(c) },
	func(i, c string) bool { return strings.HasPrefix(Smash(c), Smash(i)) },
	func(i, c string) bool { return strings.Contains(Smash(c), Smash(i)) },
}

// AmbiguousError is returned when the first matcher that matches anything matches
// more than one candidate.
type AmbiguousError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous argument: %s could be anything from {%s}", e.Input, strings.Join(e.Candidates, ", "))
}

// NoMatchError is returned when no matcher matches anything.
type NoMatchError struct {
	Input string
	What  string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%s could not be matched to a valid value for %s", e.Input, e.What)
}

// Lookup finds the key whose name best matches input.
//
// names: map to be looked up in, key -> human-readable name
// what: type of thing being looked up, only used in errors
//
// Returns the key and its full name (not necessarily equal to input, "new_d" finds
// "New Detroit").
func Lookup[K comparable](names map[K]string, input, what string) (K, string, error) {
	var zero K
	for _, match := range Matchers {
		var keys []K
		var found []string
		for k, v := range names {
			if match(input, v) {
				keys = append(keys, k)
				found = append(found, v)
			}
		}
		switch len(keys) {
		case 0:
			continue
		case 1:
			return keys[0], found[0], nil
		}
		slices.Sort(found)
		return zero, "", &AmbiguousError{Input: input, Candidates: found}
	}
	return zero, "", &NoMatchError{Input: input, What: what}
}

// LookupName is Lookup for a plain list of names.
func LookupName(names []string, input, what string) (string, error) {
	m := make(map[string]string, len(names))
	for _, n := range names {
		m[n] = n
	}
	k, _, err := Lookup(m, input, what)
	return k, err
}
