// Package engine interprets user commands against the task collection.
//
// A Session owns the in-memory collection (in file order) and the
// current view, an ordered list of collection indices selecting what
// is displayed. Numeric command arguments address the view, not the
// collection, so "done 1" acts on the first visible task even under a
// filtered or sorted view. Any mutation invalidates the view; mutating
// commands persist, reload, and reset the view to all indices.
package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"todotui/internal/clock"
	"todotui/internal/storage"
	"todotui/internal/todotxt"
)

// Session is the single mutable state of the command loop. The caller
// holds exactly one and feeds raw command strings to Execute.
type Session struct {
	store   storage.Store
	clock   clock.Clock
	log     *log.Logger
	aliases map[string]string

	// Tasks is the collection in file order; View holds the indices
	// currently shown, in display order.
	Tasks []todotxt.Task
	View  []int
}

// NewSession loads the collection from the store and starts with the
// full view. aliases maps extra command words onto built-in commands.
func NewSession(store storage.Store, clk clock.Clock, logger *log.Logger, aliases map[string]string) *Session {
	s := &Session{store: store, clock: clk, log: logger, aliases: aliases}
	s.refresh()
	return s
}

// Execute runs one command to completion. On error the session is
// unchanged; the returned error is an *Error with a Kind and a
// user-facing message. Persistence failures do not fail commands;
// they are logged and the in-memory state stays authoritative.
func (s *Session) Execute(input string) error {
	word, rest := splitCommand(input)
	if alias, ok := s.aliases[word]; ok && word != "" {
		word = alias
	}

	switch word {
	case "":
		return nil
	case "list":
		s.refresh()
		return nil
	case "add":
		return s.add(rest)
	case "done":
		return s.done(rest)
	case "remove":
		return s.remove(rest)
	case "closest":
		s.closest()
		return nil
	case "important":
		s.important()
		return nil
	default:
		return &Error{Kind: UnknownCommandError, Message: fmt.Sprintf("Unknown command: %s", word)}
	}
}

func (s *Session) add(arg string) error {
	if arg == "" {
		return usageErrorf("Usage: add <todo>")
	}
	task, err := todotxt.FromAdd(arg, s.today())
	if err != nil {
		return &Error{Kind: ValidationError, Message: err.Error()}
	}
	if err := s.store.AppendOne(task); err != nil {
		s.log.Warn("append failed", "err", err)
	}
	s.Tasks = append(s.Tasks, task)
	s.View = append(s.View, len(s.Tasks)-1)
	return nil
}

func (s *Session) done(arg string) error {
	idx, err := s.viewIndex("done", arg)
	if err != nil {
		return err
	}
	s.Tasks[idx].MarkDone(s.today())
	s.persistAll()
	s.refresh()
	return nil
}

func (s *Session) remove(arg string) error {
	idx, err := s.viewIndex("remove", arg)
	if err != nil {
		return err
	}
	s.Tasks = slices.Delete(s.Tasks, idx, idx+1)
	s.persistAll()
	s.refresh()
	return nil
}

// closest selects incomplete tasks with a due date, earliest first.
// Ties keep collection order.
func (s *Session) closest() {
	var view []int
	for i, t := range s.Tasks {
		if !t.Done && !t.Description.Due.IsZero() {
			view = append(view, i)
		}
	}
	slices.SortStableFunc(view, func(a, b int) int {
		return s.Tasks[a].Description.Due.Compare(s.Tasks[b].Description.Due)
	})
	s.View = view
}

// important selects incomplete tasks with a priority, (A) first. Ties
// keep collection order.
func (s *Session) important() {
	var view []int
	for i, t := range s.Tasks {
		if !t.Done && t.Priority != 0 {
			view = append(view, i)
		}
	}
	slices.SortStableFunc(view, func(a, b int) int {
		return cmp.Compare(s.Tasks[a].Priority, s.Tasks[b].Priority)
	})
	s.View = view
}

// viewIndex resolves a 1-based view position argument to a collection
// index.
func (s *Session) viewIndex(command, arg string) (int, error) {
	if arg == "" {
		return 0, usageErrorf("Usage: " + command + " <ID>")
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, usageErrorf("Usage: " + command + " <ID>")
	}
	if n > len(s.View) {
		return 0, &Error{Kind: RangeError, Message: "Invalid ID"}
	}
	return s.View[n-1], nil
}

func (s *Session) refresh() {
	s.Tasks = s.store.LoadAll()
	s.View = allIndices(len(s.Tasks))
}

// persistAll rewrites the whole collection. Failures are soft: the
// in-memory state stays authoritative and the error only goes to the
// log.
func (s *Session) persistAll() {
	if err := s.store.RewriteAll(s.Tasks); err != nil {
		s.log.Warn("rewrite failed", "err", err)
	}
}

func (s *Session) today() todotxt.Date {
	return todotxt.DateOf(s.clock.Now())
}

func allIndices(n int) []int {
	view := make([]int, n)
	for i := range view {
		view[i] = i
	}
	return view
}

func splitCommand(input string) (word, rest string) {
	trimmed := strings.TrimSpace(input)
	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return "", ""
	}
	word = fields[0]
	rest = strings.TrimSpace(strings.TrimPrefix(trimmed, word))
	return word, rest
}
