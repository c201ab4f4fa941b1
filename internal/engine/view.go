package engine

import (
	"context"
	"fmt"

	"github.com/fentz26/taskview/internal/models"
)

// View binds a Loader, a search term and a Paginator into the state of one
// task list. Every derived value is recomputed from the loaded collection on
// each call.
type View struct {
	loader *Loader
	pager  *Paginator
	term   string
}

// NewView creates a view with an empty search on page 1.
func NewView(loader *Loader, pager *Paginator) *View {
	if pager == nil {
		pager = NewPaginator(DefaultPageSize, DefaultWindow)
	}
	return &View{loader: loader, pager: pager}
}

// Loader returns the view's loader.
func (v *View) Loader() *Loader { return v.loader }

// Load activates the loader and waits for the result.
func (v *View) Load(ctx context.Context) LoadState { return v.loader.Load(ctx) }

// Retry re-runs a failed retrieval and waits for the result.
func (v *View) Retry(ctx context.Context) (LoadState, error) { return v.loader.Retry(ctx) }

// State returns the loader snapshot.
func (v *View) State() LoadState { return v.loader.State() }

// Loading reports whether the retrieval is still outstanding.
func (v *View) Loading() bool { return v.loader.State().Phase == PhasePending }

// Error returns the failure message, or "" when the loader has not failed.
func (v *View) Error() string {
	st := v.loader.State()
	if st.Phase != PhaseFailed {
		return ""
	}
	return st.Err
}

// SearchTerm returns the current search string.
func (v *View) SearchTerm() string { return v.term }

// SetSearchTerm replaces the search string and returns to page 1.
func (v *View) SetSearchTerm(term string) {
	v.term = term
	v.pager.Reset()
}

// Filtered returns the loaded tasks matching the search term. It is empty
// unless the loader is ready.
func (v *View) Filtered() []models.Task {
	st := v.loader.State()
	if st.Phase != PhaseReady {
		return nil
	}
	return Filter(st.Tasks, v.term)
}

// TotalPages returns the page count of the filtered tasks.
func (v *View) TotalPages() int { return v.pager.TotalPages(len(v.Filtered())) }

// Page returns the current page.
func (v *View) Page() int { return v.pager.Current(len(v.Filtered())) }

// SetPage moves to page n, clamped, and returns the page landed on.
func (v *View) SetPage(n int) int { return v.pager.SetPage(n, len(v.Filtered())) }

// NextPage moves one page forward.
func (v *View) NextPage() int { return v.pager.Next(len(v.Filtered())) }

// PrevPage moves one page back.
func (v *View) PrevPage() int { return v.pager.Prev(len(v.Filtered())) }

// PageNumbers returns the page numbers to render as direct jumps.
func (v *View) PageNumbers() []int { return v.pager.Window(len(v.Filtered())) }

// Visible returns the tasks on the current page.
func (v *View) Visible() []models.Task { return v.pager.Slice(v.Filtered()) }

// Summary returns the "Showing X of Y tasks" footer line.
func (v *View) Summary() string {
	filtered := v.Filtered()
	return fmt.Sprintf("Showing %d of %d tasks", len(v.pager.Slice(filtered)), len(filtered))
}

// Close tears the view down; a retrieval still in flight is discarded.
func (v *View) Close() { v.loader.Close() }
