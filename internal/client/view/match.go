package view

import (
	"strings"
)

type matchKind int

const (
	matchUnset matchKind = iota
	matchEquals
	matchContains
)

// Match is a single filter criterion. The zero value matches everything.
type Match struct {
	kind  matchKind
	value string
}

func Unset() Match { return Match{} }

func Equals(v string) Match { return Match{kind: matchEquals, value: v} }

// Contains matches case-insensitively.
func Contains(v string) Match { return Match{kind: matchContains, value: strings.ToLower(v)} }

func (m Match) IsUnset() bool { return m.kind == matchUnset }

// Value is the operand, lower-cased for Contains.
func (m Match) Value() string { return m.value }

// Accept reports whether any of the candidates satisfies m.
func (m Match) Accept(candidates ...string) bool {
	switch m.kind {
	case matchEquals:
		for _, c := range candidates {
			if c == m.value {
				return true
			}
		}
		return false
	case matchContains:
		for _, c := range candidates {
			if strings.Contains(strings.ToLower(c), m.value) {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// RatingFloor is the minimum average a place needs to stay visible.
type RatingFloor struct {
	set bool
	min float64
}

func AnyRating() RatingFloor { return RatingFloor{} }

func AtLeast(n float64) RatingFloor { return RatingFloor{set: true, min: n} }

func (r RatingFloor) Accept(avg float64) bool {
	return !r.set || avg >= r.min
}
