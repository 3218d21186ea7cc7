package reminder

import (
	"strconv"

	"github.com/tidwall/gjson"
)

// Decode converts the store's map-of-maps into reminders. Fields are read
// leniently: a missing or mistyped title, due or priority falls back to its
// zero value, and an assignee that is not a JSON string is dropped.
//
// An empty body or JSON null yields an empty list. A body that is not an
// object of objects is rejected as a whole with ErrNotCollection. The order
// of the result follows the body and must not be relied upon.
func Decode(raw []byte) ([]Reminder, error) {
	reminders := make([]Reminder, 0)

	if !gjson.ValidBytes(raw) {
		if len(raw) == 0 {
			return reminders, nil
		}
		return reminders, ErrNotCollection
	}

	root := gjson.ParseBytes(raw)
	switch {
	case root.Type == gjson.Null:
		return reminders, nil
	case !root.IsObject():
		return reminders, ErrNotCollection
	}

	valid := true
	root.ForEach(func(key, content gjson.Result) bool {
		if !content.IsObject() {
			valid = false
			return false
		}
		reminders = append(reminders, decodeOne(key.String(), content))
		return true
	})
	if !valid {
		return make([]Reminder, 0), ErrNotCollection
	}

	return reminders, nil
}

func decodeOne(id string, content gjson.Result) Reminder {
	r := Reminder{
		ID:       id,
		Title:    CaseFix(stringField(content, "title")),
		Due:      uintField(content, "due"),
		Priority: uintField(content, "priority"),
	}

	if assignee := content.Get("assignee"); assignee.Type == gjson.String {
		r.Assignee = StringPtr(assignee.Str)
	}

	return r
}

func stringField(content gjson.Result, name string) string {
	v := content.Get(name)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// uintField accepts only non-negative JSON integers that fit in uint64.
func uintField(content gjson.Result, name string) uint64 {
	v := content.Get(name)
	if v.Type != gjson.Number {
		return 0
	}
	n, err := strconv.ParseUint(v.Raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Encode converts reminders into the store's map-of-maps shape for a bulk
// write. The id becomes the key and is not repeated in the value; a reminder
// without an id is keyed by the empty string.
func Encode(reminders []Reminder) map[string]Reminder {
	out := make(map[string]Reminder, len(reminders))
	for _, r := range reminders {
		out[r.ID] = r.WithoutID()
	}
	return out
}
