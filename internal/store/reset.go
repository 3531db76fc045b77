package store

import (
	"context"
	"errors"

	"bingo-editor/internal/loader"
	"bingo-editor/internal/model"

	"go.uber.org/zap"
)

var errNoLoader = errors.New("store has no loader")

// Reset discards the document and selection and reloads from the loader.
// On success board 0 is selected (when the document has any boards).
func (s *EventStore) Reset(ctx context.Context) error {
	gen := s.BeginReset()
	doc, err := s.Fetch(ctx)
	s.CompleteReset(gen, doc, err)
	return err
}

// Fetch runs the loader without touching store state. Asynchronous callers
// pair it with BeginReset and CompleteReset.
func (s *EventStore) Fetch(ctx context.Context) (model.Document, error) {
	if s.loader == nil {
		return model.Document{}, errNoLoader
	}
	return s.loader.Load(ctx)
}

// BeginReset starts a new load generation and puts the store into the
// loading state. The returned generation is passed to CompleteReset.
func (s *EventStore) BeginReset() uint64 {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.state = loader.StateLoading
	s.errMsg = ""
	s.apply("reset", &model.Document{}, model.Selection{Section: model.SectionQuests})
	return gen
}

// CompleteReset applies the outcome of the load started by BeginReset.
// Completions for an older generation are dropped and reported as false.
func (s *EventStore) CompleteReset(gen uint64, doc model.Document, err error) bool {
	s.mu.Lock()
	if gen != s.gen {
		current := s.gen
		s.mu.Unlock()
		s.log.Debug("dropping stale load", zap.Uint64("generation", gen), zap.Uint64("current", current))
		return false
	}

	if err != nil {
		s.state = loader.StateError
		s.errMsg = loader.ErrorMessage(err)
		s.apply("load_failed", s.doc, s.sel)
		return true
	}

	s.state = loader.StateReady
	s.errMsg = ""
	sel := model.Selection{Section: s.sel.Section, HasBoard: len(doc.Boards) > 0}
	s.apply("loaded", &doc, sel)
	return true
}
