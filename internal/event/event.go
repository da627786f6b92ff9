// Package event turns file change notifications into reconciliation passes.
//
// Events are processed strictly one at a time: Serve reads the next event
// only after the previous pass, including any package installs it started,
// has finished.
package event

import (
	"context"
	"strings"

	"github.com/Hactar-js/hactar-babel/internal/logging"
	"github.com/Hactar-js/hactar-babel/internal/reconcile"
	"github.com/Hactar-js/hactar-babel/internal/syntax"
)

// Kind is the type of a file change.
type Kind int

const (
	Other Kind = iota
	AddFile
	ChangedFile
	RemoveFile
)

var kindNames = map[Kind]string{
	Other:       "OTHER",
	AddFile:     "ADD_FILE",
	ChangedFile: "CHANGED_FILE",
	RemoveFile:  "REMOVE_FILE",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return kindNames[Other]
}

// ParseKind maps a kind name such as "ADD_FILE" to its Kind. Unknown names
// map to Other.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return k
		}
	}
	return Other
}

// Actionable reports whether events of this kind trigger a pass.
func (k Kind) Actionable() bool {
	return k == AddFile || k == ChangedFile
}

// Event is a single file change.
type Event struct {
	Kind Kind
	Path string
}

// Parser produces a syntax tree for a file.
type Parser interface {
	ParseFile(path string) (*syntax.Tree, error)
}

// Reconciler runs a pass for a parsed file.
type Reconciler interface {
	Reconcile(ctx context.Context, tree *syntax.Tree) (*reconcile.Result, error)
}

// Handler processes events.
type Handler struct {
	parser     Parser
	reconciler Reconciler
}

// NewHandler returns a Handler that parses with p and reconciles with r.
func NewHandler(p Parser, r Reconciler) *Handler {
	return &Handler{parser: p, reconciler: r}
}

// Handle processes one event to completion.
//
// Non-actionable events, files that cannot be parsed, and files with no
// tokens produce no side effects and return nil, nil. The error is the
// reconciler's, returned together with its partial result.
func (h *Handler) Handle(ctx context.Context, ev Event) (*reconcile.Result, error) {
	logger := logging.FromContext(ctx)

	if !ev.Kind.Actionable() {
		logger.Log(ctx, logging.LevelTrace, "ignoring event", "kind", ev.Kind, "path", ev.Path)
		return nil, nil
	}

	tree, err := h.parser.ParseFile(ev.Path)
	if err != nil {
		logger.Debug("skipping unparseable file", "path", ev.Path, "error", err)
		return nil, nil
	}
	if tree.Empty() {
		logger.Debug("skipping empty file", "path", ev.Path)
		return nil, nil
	}

	return h.reconciler.Reconcile(ctx, tree)
}

// Serve handles events from ch until ch is closed or ctx is cancelled.
// Cancellation is only observed between events. Errors from a pass are
// logged and do not stop the loop. onResult, if non-nil, is called after
// every pass that ran.
func Serve(ctx context.Context, ch <-chan Event, h *Handler, onResult func(*reconcile.Result, error)) error {
	logger := logging.FromContext(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			res, err := h.Handle(ctx, ev)
			if err != nil {
				logger.Error("reconciliation failed", "path", ev.Path, "error", err)
			}
			if onResult != nil && (res != nil || err != nil) {
				onResult(res, err)
			}
		}
	}
}
