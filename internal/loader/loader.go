// Package loader fetches the event document from its source and validates it.
package loader

import (
	"context"
	"errors"
	"sync"
	"time"

	"bingo-editor/internal/model"
	"bingo-editor/internal/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Status is exactly one of loading, error(Err) or ready(Document).
type Status struct {
	State    State
	Err      string
	Document *model.Document
}

// FetchError wraps transport, IO and decode failures.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return "data fetch error: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// ErrorMessage is the text shown to the user for a failed load.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		return "validation error: data does not match schema"
	}
	return err.Error()
}

// Loader runs fetch+parse against a single source. There is no retry: a
// failed load stays failed until Load is called again.
type Loader struct {
	src Source
	log *zap.Logger

	mu     sync.Mutex
	status Status
}

func New(src Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		src:    src,
		log:    log.Named("loader"),
		status: Status{State: StateLoading},
	}
}

func (l *Loader) Status() Status {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.status
}

// Load fetches and validates the document. Errors are *FetchError or
// *schema.ValidationError.
func (l *Loader) Load(ctx context.Context) (model.Document, error) {
	loadID := uuid.NewString()
	log := l.log.With(zap.String("load_id", loadID), zap.Stringer("source", l.src))
	started := time.Now()

	l.setStatus(Status{State: StateLoading})
	log.Debug("loading event document")

	doc, err := l.fetchAndParse(ctx)
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			for _, is := range verr.Issues {
				log.Warn("schema issue", zap.String("path", is.Path), zap.String("message", is.Message))
			}
		}
		log.Error("load failed", zap.Error(err), zap.Duration("took", time.Since(started)))
		l.setStatus(Status{State: StateError, Err: ErrorMessage(err)})
		return model.Document{}, err
	}

	log.Info("event document loaded",
		zap.Int("boards", len(doc.Boards)),
		zap.Int("titles", len(doc.Titles)),
		zap.Duration("took", time.Since(started)),
	)
	d := doc
	l.setStatus(Status{State: StateReady, Document: &d})
	return doc, nil
}

func (l *Loader) fetchAndParse(ctx context.Context) (model.Document, error) {
	raw, err := l.src.Fetch(ctx)
	if err != nil {
		return model.Document{}, &FetchError{Source: l.src.String(), Err: err}
	}
	var doc model.Document
	if l.src.YAML() {
		doc, err = schema.ParseYAML(raw)
	} else {
		doc, err = schema.Parse(raw)
	}
	if err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return model.Document{}, err
		}
		return model.Document{}, &FetchError{Source: l.src.String(), Err: err}
	}
	return doc, nil
}

func (l *Loader) setStatus(s Status) {
	l.mu.Lock()
	l.status = s
	l.mu.Unlock()
}
