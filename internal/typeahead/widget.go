// Package typeahead implements the search-as-you-type widget state machine: it queries the
// search endpoint on input, renders a sanitized result list and handles keyboard navigation.
package typeahead

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single search request.
const DefaultTimeout = 3 * time.Second

// Result is one search hit.
type Result struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Href is the page the result links to.
func (r Result) Href() string {
	return "/stores/" + r.Slug
}

// Searcher runs a typeahead query.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Result, error)
}

// Panel is the dropdown the widget draws into.
type Panel interface {
	Show()
	Hide()
	Render(html string)
}

// Navigator follows a link.
type Navigator interface {
	Navigate(href string)
}

// Key is a keyboard key relevant to the widget.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyEnter
)

// Config wires a Widget.
type Config struct {
	Searcher  Searcher
	Panel     Panel
	Navigator Navigator
	Logger    *zap.Logger
	Timeout   time.Duration
}

// Widget holds the dropdown state. It is safe for concurrent use; responses that arrive
// after a newer input are discarded.
type Widget struct {
	searcher Searcher
	panel    Panel
	nav      Navigator
	logger   *zap.Logger
	timeout  time.Duration
	renderer *renderer

	mu      sync.Mutex
	query   string
	results []Result
	active  int
	visible bool
	seq     uint64
	cancel  context.CancelFunc
}

func New(cfg Config) (*Widget, error) {
	if cfg.Searcher == nil || cfg.Panel == nil || cfg.Navigator == nil {
		return nil, errors.New("typeahead: searcher, panel and navigator are required")
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	w := &Widget{
		searcher: cfg.Searcher,
		panel:    cfg.Panel,
		nav:      cfg.Navigator,
		logger:   cfg.Logger,
		timeout:  cfg.Timeout,
		renderer: r,
		active:   -1,
	}
	if w.logger == nil {
		w.logger = zap.NewNop()
	}
	if w.timeout <= 0 {
		w.timeout = DefaultTimeout
	}
	return w, nil
}

// OnInput reacts to the current input value. The returned channel closes once the request
// issued for this value has been applied or discarded.
func (w *Widget) OnInput(ctx context.Context, value string) <-chan struct{} {
	done := make(chan struct{})

	w.mu.Lock()
	w.seq++
	seq := w.seq
	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	if strings.TrimSpace(value) == "" {
		w.query = ""
		w.results = nil
		w.active = -1
		w.visible = false
		w.panel.Hide()
		w.mu.Unlock()
		close(done)
		return done
	}

	w.visible = true
	w.panel.Show()
	reqCtx, cancel := context.WithTimeout(ctx, w.timeout)
	w.cancel = cancel
	w.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()

		results, err := w.searcher.Search(reqCtx, value)

		w.mu.Lock()
		defer w.mu.Unlock()
		if seq != w.seq {
			return
		}
		w.cancel = nil
		if err != nil {
			w.logger.Warn("typeahead search failed", zap.String("query", value), zap.Error(err))
			return
		}
		w.query = value
		w.results = results
		w.active = -1
		w.renderLocked()
	}()

	return done
}

// OnKey handles navigation keys and reports whether the key was consumed.
func (w *Widget) OnKey(key Key) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	n := len(w.results)
	if !w.visible || n == 0 {
		return false
	}

	switch key {
	case KeyDown:
		w.active = (w.active + 1) % n
	case KeyUp:
		if w.active <= 0 {
			w.active = n - 1
		} else {
			w.active--
		}
	case KeyEnter:
		if w.active < 0 {
			return false
		}
		w.nav.Navigate(w.results[w.active].Href())
		return true
	default:
		return false
	}
	w.renderLocked()
	return true
}

func (w *Widget) renderLocked() {
	html, err := w.renderer.render(w.query, w.results, w.active)
	if err != nil {
		w.logger.Error("typeahead render failed", zap.Error(err))
		return
	}
	w.panel.Render(html)
}

// Active returns the highlighted index, -1 when nothing is highlighted.
func (w *Widget) Active() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Widget) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

func (w *Widget) Results() []Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Result(nil), w.results...)
}
