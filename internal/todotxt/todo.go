// Package todotxt parses and serializes todo.txt record lines.
//
// One line is one task. The line format is the todo.txt convention:
//
//	x (A) 2024-01-02 2024-01-01 Buy milk +home @errand due:2024-01-05
//
// Parse never fails: anything it cannot classify ends up in the task's
// content, so a malformed line still round-trips as a displayable task.
package todotxt

import (
	"errors"
	"strings"
)

// Description holds the free-text part of a task and the tags parsed
// out of it.
type Description struct {
	Content    string
	Project    string // from a +token, without the +
	Context    string // from an @token, without the @
	Supplement string // first key:value/key=value token, kept verbatim
	Due        Date   // from a parsable due:YYYY-MM-DD token
}

// Task is one parsed record line. The zero value is an empty,
// incomplete task. Task is comparable; two tasks parsed from the same
// canonical line are ==.
type Task struct {
	Done           bool
	Priority       rune // 0 = none
	CompletionDate Date
	CreationDate   Date
	Description    Description
}

// ErrEmptyDescription is returned by FromAdd when the input has no
// content left after tag classification.
var ErrEmptyDescription = errors.New("task must include a non-empty description")

// Parse decodes a single record line. Tokens are consumed left to
// right: completion marker, priority, dates, then per-token tag
// classification. Unrecognized tokens join the content.
func Parse(line string) Task {
	tokens := strings.Fields(line)
	idx := 0

	var t Task

	if idx < len(tokens) && tokens[idx] == "x" {
		t.Done = true
		idx++
	}

	if idx < len(tokens) {
		if p, ok := priorityOf(tokens[idx]); ok {
			t.Priority = p
			idx++
		}
	}

	// One or two leading dates. The two-date form (completion date
	// first, then creation date) only applies to completed tasks; a
	// single date is always the creation date.
	var d1, d2 Date
	ok1, ok2 := false, false
	if idx < len(tokens) {
		d1, ok1 = ParseDate(tokens[idx])
	}
	if idx+1 < len(tokens) {
		d2, ok2 = ParseDate(tokens[idx+1])
	}
	switch {
	case t.Done && ok1 && ok2:
		t.CompletionDate = d1
		t.CreationDate = d2
		idx += 2
	case ok1:
		t.CreationDate = d1
		idx++
	}

	var content []string
	for _, tok := range tokens[idx:] {
		switch {
		case strings.HasPrefix(tok, "+"):
			t.Description.Project = tok[1:]
		case strings.HasPrefix(tok, "@"):
			t.Description.Context = tok[1:]
		case strings.HasPrefix(tok, "due:"):
			if d, ok := ParseDate(tok[len("due:"):]); ok {
				t.Description.Due = d
			}
			// Kept verbatim even when the date is unparsable, so
			// the token survives a rewrite of the file.
			t.Description.Supplement = tok
		case t.Description.Supplement == "" && strings.ContainsAny(tok, ":="):
			t.Description.Supplement = tok
		default:
			content = append(content, tok)
		}
	}
	t.Description.Content = strings.Join(content, " ")

	return t
}

// Format serializes the task back to a record line. Token order is
// fixed; this is the persisted file format.
func (t Task) Format() string {
	parts := make([]string, 0, 8)
	if t.Done {
		parts = append(parts, "x")
	}
	if t.Priority != 0 {
		parts = append(parts, "("+string(t.Priority)+")")
	}
	if t.Done && !t.CompletionDate.IsZero() {
		parts = append(parts, t.CompletionDate.String())
	}
	if !t.CreationDate.IsZero() {
		parts = append(parts, t.CreationDate.String())
	}
	if t.Description.Content != "" {
		parts = append(parts, t.Description.Content)
	}
	if t.Description.Project != "" {
		parts = append(parts, "+"+t.Description.Project)
	}
	if t.Description.Context != "" {
		parts = append(parts, "@"+t.Description.Context)
	}
	if t.Description.Supplement != "" {
		parts = append(parts, t.Description.Supplement)
	}
	return strings.Join(parts, " ")
}

// MarkDone completes the task, stamping today as the completion date.
// Already-completed tasks are left untouched.
func (t *Task) MarkDone(today Date) {
	if t.Done {
		return
	}
	t.Done = true
	t.CompletionDate = today
}

// FromAdd parses user input for a new task: the content must be
// non-empty, and a missing creation date is stamped with today.
func FromAdd(input string, today Date) (Task, error) {
	t := Parse(input)
	if strings.TrimSpace(t.Description.Content) == "" {
		return Task{}, ErrEmptyDescription
	}
	if t.CreationDate.IsZero() {
		t.CreationDate = today
	}
	return t, nil
}

func priorityOf(tok string) (rune, bool) {
	if len(tok) != 3 || tok[0] != '(' || tok[2] != ')' {
		return 0, false
	}
	c := rune(tok[1])
	if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
		return 0, false
	}
	return c, true
}
