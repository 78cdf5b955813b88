// Package view holds the article list view: a single in-memory list,
// loaded once on mount, with the Idle -> Loading -> Success|Failed
// state machine.
package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/Semior001/newsview/app/news"
	"github.com/Semior001/newsview/app/render"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_loader.go . Loader

// Loader retrieves a page of articles.
type Loader interface {
	List(ctx context.Context) (news.Page, error)
}

// State is a state of the view.
type State int

// View states.
const (
	Idle State = iota
	Loading
	Success
	Failed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

var (
	// ErrBusy is returned when a load is requested while another one is in flight.
	ErrBusy = errors.New("articles are already loading")
	// ErrMounted is returned on a repeated mount.
	ErrMounted = errors.New("view is already mounted")
	// ErrNotMounted is returned when refreshing a view that is not mounted.
	ErrNotMounted = errors.New("view is not mounted")
)

// Snapshot is a consistent copy of the view state.
type Snapshot struct {
	State State
	Page  news.Page
	Err   error
}

// Document returns the renderable form of the snapshot.
// Both fetch and shape errors collapse into the same failure message.
func (s Snapshot) Document() render.Document {
	switch s.State {
	case Success:
		return render.Page(s.Page)
	case Failed:
		return render.Failed()
	default:
		return render.Loading()
	}
}

// View owns the article list for the time it is mounted.
type View struct {
	log    *slog.Logger
	loader Loader

	mu       sync.Mutex
	state    State
	page     news.Page
	err      error
	gen      uint64
	mounted  bool
	tornDown bool
	cancel   context.CancelFunc
}

// New makes a new idle view.
func New(lg *slog.Logger, loader Loader) *View {
	return &View{log: lg, loader: loader}
}

// Mount presents the view and schedules exactly one load.
// The returned channel is closed when the load completes.
func (v *View) Mount(ctx context.Context) (<-chan struct{}, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted || v.tornDown {
		return nil, ErrMounted
	}
	v.mounted = true

	return v.startLocked(ctx), nil
}

// Refresh explicitly reloads the list. It fails with ErrBusy while a
// load is in flight.
func (v *View) Refresh(ctx context.Context) (<-chan struct{}, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.mounted {
		return nil, ErrNotMounted
	}
	if v.state == Loading {
		return nil, ErrBusy
	}

	return v.startLocked(ctx), nil
}

// Unmount tears the view down. An in-flight load is canceled and its
// result is discarded.
func (v *View) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.mounted = false
	v.tornDown = true
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{State: v.state, Page: v.page, Err: v.err}
}

// Render writes the current state in the given format.
func (v *View) Render(w io.Writer, f render.Format) error {
	return render.Write(w, f, v.Snapshot().Document())
}

func (v *View) startLocked(parent context.Context) <-chan struct{} {
	ctx, cancel := context.WithCancel(parent)

	v.gen++
	gen := v.gen
	v.cancel = cancel
	v.state = Loading
	v.err = nil

	done := make(chan struct{})

	go func() {
		defer close(done)
		defer cancel()

		page, err := v.load(ctx)
		v.complete(ctx, gen, page, err)
	}()

	return done
}

func (v *View) load(ctx context.Context) (page news.Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			v.log.ErrorCtx(ctx, "panic recovered", slog.Any("panic", r))
			err = fmt.Errorf("load panicked: %v", r)
		}
	}()

	return v.loader.List(ctx)
}

func (v *View) complete(ctx context.Context, gen uint64, page news.Page, err error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.tornDown || gen != v.gen {
		v.log.DebugCtx(ctx, "discarded load result of a torn down view")
		return
	}
	v.cancel = nil

	if err != nil {
		v.log.WarnCtx(ctx, "failed to load articles",
			slog.String("kind", errKind(err)),
			slog.Any("err", err),
		)
		v.state, v.page, v.err = Failed, news.Page{}, err
		return
	}

	v.state, v.page = Success, page
}

func errKind(err error) string {
	var fe *news.FetchError
	switch {
	case errors.As(err, &fe):
		return "fetch"
	case errors.Is(err, news.ErrUnexpectedFormat):
		return "shape"
	default:
		return "unknown"
	}
}

// LoadOnce presents a view for a single load and returns the resulting
// snapshot. The view is torn down on return.
func LoadOnce(ctx context.Context, lg *slog.Logger, loader Loader) (Snapshot, error) {
	v := New(lg, loader)
	defer v.Unmount()

	done, err := v.Mount(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("mount view: %w", err)
	}

	select {
	case <-done:
	case <-ctx.Done():
	}

	if err = ctx.Err(); err != nil {
		return Snapshot{}, err
	}

	return v.Snapshot(), nil
}
