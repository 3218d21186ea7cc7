package reminder

import (
	"unicode"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

// Reminder is a single record of the reminders collection.
//
// ID is empty until the store has assigned one; it is omitted from JSON
// when empty. Assignee is serialized as null when absent.
type Reminder struct {
	ID       string  `json:"id,omitempty"`
	Title    string  `json:"title"`
	Due      uint64  `json:"due"`
	Priority uint64  `json:"priority"`
	Assignee *string `json:"assignee"`
}

// HasID reports whether the store has assigned the reminder an id.
func (r Reminder) HasID() bool {
	return r.ID != ""
}

// WithoutID returns a copy of r with the id cleared, as written to the store
// when the id is part of the path.
func (r Reminder) WithoutID() Reminder {
	r.ID = ""
	return r
}

// IdentityEqual compares reminders by id only.
func IdentityEqual(a, b Reminder) bool {
	return a.ID == b.ID
}

// FullEqual compares every field, dereferencing the assignee.
func FullEqual(a, b Reminder) bool {
	return cmp.Equal(a, b)
}

// CaseFix upper-cases the first rune of s and leaves the rest untouched.
// It is applied to titles on read only.
func CaseFix(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	upper := unicode.ToUpper(first)
	if upper == first {
		return s
	}
	return string(upper) + s[size:]
}

// StringPtr is a helper for optional string fields.
func StringPtr(s string) *string {
	return &s
}
