// Package store owns the live event document and the UI selection.
//
// Every applied mutation installs a freshly allocated *model.Document; the
// path from the root to the changed node is copied and everything else is
// shared with the previous snapshot. Snapshots handed out by Document are
// never modified afterwards, so callers may compare them by pointer.
package store

import (
	"context"
	"sync"

	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"

	"go.uber.org/zap"
)

// Loader is the fetch+validate step used by Reset.
type Loader interface {
	Load(ctx context.Context) (model.Document, error)
}

// Change is delivered to subscribers after each applied operation.
type Change struct {
	Op        string
	Document  *model.Document
	Selection model.Selection
	Status    loader.Status
}

// EventStore is constructed once per editing session.
type EventStore struct {
	loader Loader
	log    *zap.Logger

	mu     sync.Mutex
	doc    *model.Document
	sel    model.Selection
	state  loader.State
	errMsg string
	gen    uint64

	subs    map[int]func(Change)
	nextSub int
}

func New(l Loader, log *zap.Logger) *EventStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventStore{
		loader: l,
		log:    log.Named("store"),
		doc:    &model.Document{},
		sel:    model.Selection{Section: model.SectionQuests},
		state:  loader.StateLoading,
		subs:   map[int]func(Change){},
	}
}

// Subscribe registers fn for change notifications. fn runs synchronously on
// the goroutine that performed the operation.
func (s *EventStore) Subscribe(fn func(Change)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *EventStore) Document() *model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

func (s *EventStore) Boards() []model.Board { return s.Document().Boards }
func (s *EventStore) Theme() string         { return s.Document().Theme }
func (s *EventStore) Titles() []model.Title { return s.Document().Titles }

func (s *EventStore) Selection() model.Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel
}

// SelectedBoard returns the selected board index; ok is false when no board
// is selected.
func (s *EventStore) SelectedBoard() (int, bool) {
	sel := s.Selection()
	return sel.Board, sel.HasBoard
}

// Status passes through the loading/error state of the last reset.
func (s *EventStore) Status() loader.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *EventStore) statusLocked() loader.Status {
	st := loader.Status{State: s.state, Err: s.errMsg}
	if s.state == loader.StateReady {
		st.Document = s.doc
	}
	return st
}

// Generation identifies the current load. It increases on every reset.
func (s *EventStore) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// apply installs doc and sel, then notifies subscribers. Selection-only
// operations pass the current snapshot through. Callers hold s.mu; apply
// releases it.
func (s *EventStore) apply(op string, doc *model.Document, sel model.Selection) {
	s.doc = doc
	s.sel = sel
	ch := Change{Op: op, Document: s.doc, Selection: sel, Status: s.statusLocked()}
	subs := make([]func(Change), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.log.Debug("applied", zap.String("op", op), zap.Int("boards", len(doc.Boards)))
	for _, fn := range subs {
		fn(ch)
	}
}

// reject logs a refused mutation. Callers hold s.mu; reject releases it.
func (s *EventStore) reject(err error) error {
	s.mu.Unlock()
	s.log.Warn("mutation rejected", zap.Error(err))
	return err
}
