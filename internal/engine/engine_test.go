package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/fentz26/taskview/internal/models"
)

type stubFetcher struct {
	tasks []models.Task
	err   error
	calls atomic.Int32
}

func (s *stubFetcher) FetchTasks(ctx context.Context) ([]models.Task, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.tasks, nil
}

func sampleTasks(n int) []models.Task {
	tasks := make([]models.Task, n)
	for i := range tasks {
		tasks[i] = models.Task{
			ID:          models.TaskID(fmt.Sprintf("t%d", i+1)),
			Title:       fmt.Sprintf("Task %d", i+1),
			Description: "routine chore",
			Status:      "open",
			Priority:    "medium",
			DueDate:     "2024-06-01",
		}
	}
	return tasks
}

func ids(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = string(t.ID)
	}
	return out
}

func newReadyView(t *testing.T, tasks []models.Task) *View {
	t.Helper()
	v := NewView(NewLoader(&stubFetcher{tasks: tasks}), NewPaginator(6, 5))
	if st := v.Load(context.Background()); st.Phase != PhaseReady {
		t.Fatalf("Expected ready, got %s", st.Phase)
	}
	return v
}

func TestLoader_Success(t *testing.T) {
	f := &stubFetcher{tasks: sampleTasks(3)}
	l := NewLoader(f)

	if got := l.State().Phase; got != PhasePending {
		t.Fatalf("Expected pending before load, got %s", got)
	}

	st := l.Load(context.Background())
	if st.Phase != PhaseReady {
		t.Fatalf("Expected ready, got %s", st.Phase)
	}
	if len(st.Tasks) != 3 {
		t.Errorf("Expected 3 tasks, got %d", len(st.Tasks))
	}

	// A second activation must not refetch.
	l.Load(context.Background())
	if got := f.calls.Load(); got != 1 {
		t.Errorf("Expected 1 fetch, got %d", got)
	}
}

func TestLoader_FailureAndRetry(t *testing.T) {
	f := &stubFetcher{err: errors.New("Failed to fetch tasks")}
	l := NewLoader(f)

	st := l.Load(context.Background())
	if st.Phase != PhaseFailed {
		t.Fatalf("Expected failed, got %s", st.Phase)
	}
	if st.Err != "Failed to fetch tasks" {
		t.Errorf("Expected reason 'Failed to fetch tasks', got %q", st.Err)
	}
	if st.Tasks != nil {
		t.Errorf("Expected no tasks on failure, got %v", st.Tasks)
	}

	f.err = nil
	f.tasks = sampleTasks(2)
	st, err := l.Retry(context.Background())
	if err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
	if st.Phase != PhaseReady || len(st.Tasks) != 2 {
		t.Errorf("Expected ready with 2 tasks, got %s with %d", st.Phase, len(st.Tasks))
	}
	if got := f.calls.Load(); got != 2 {
		t.Errorf("Expected 2 fetches, got %d", got)
	}
}

func TestLoader_RetryRequiresFailure(t *testing.T) {
	l := NewLoader(&stubFetcher{tasks: sampleTasks(1)})
	l.Load(context.Background())

	if _, err := l.Retry(context.Background()); !errors.Is(err, ErrNotFailed) {
		t.Errorf("Expected ErrNotFailed, got %v", err)
	}
}

func TestLoader_StaleAndClosedResultsDiscarded(t *testing.T) {
	l := NewLoader(&stubFetcher{})

	ticket, ok := l.Begin()
	if !ok {
		t.Fatal("Expected first Begin to activate")
	}
	if _, ok := l.Begin(); ok {
		t.Error("Expected second Begin to be refused")
	}

	if l.Complete(ticket+1, sampleTasks(1), nil) {
		t.Error("Expected stale ticket to be discarded")
	}
	if got := l.State().Phase; got != PhasePending {
		t.Errorf("Expected still pending, got %s", got)
	}

	l.Close()
	if l.Complete(ticket, sampleTasks(1), nil) {
		t.Error("Expected result after Close to be discarded")
	}
	if _, err := l.BeginRetry(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}

func TestLoader_NilCollectionIsEmptyReady(t *testing.T) {
	l := NewLoader(&stubFetcher{tasks: nil})
	st := l.Load(context.Background())
	if st.Phase != PhaseReady {
		t.Fatalf("Expected ready, got %s", st.Phase)
	}
	if st.Tasks == nil || len(st.Tasks) != 0 {
		t.Errorf("Expected empty non-nil collection, got %#v", st.Tasks)
	}
}

func TestFilter_Matching(t *testing.T) {
	tasks := []models.Task{
		{ID: "1", Title: "Buy Groceries", Description: "milk and eggs", Status: "open"},
		{ID: "2", Title: "Write report", Description: "Quarterly NUMBERS", Status: "done"},
		{ID: "3", Title: "Call plumber", Description: "kitchen sink", Status: "Blocked"},
	}

	tests := []struct {
		name string
		term string
		want []string
	}{
		{"empty matches all", "", []string{"1", "2", "3"}},
		{"title case insensitive", "groceries", []string{"1"}},
		{"description", "numbers", []string{"2"}},
		{"status", "BLOCKED", []string{"3"}},
		{"substring across fields", "r", []string{"1", "2", "3"}},
		{"no match", "zebra", []string{}},
		{"no multi-term AND", "milk report", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(tasks, tt.term))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.term, got, tt.want)
			}
		})
	}
}

func TestFilter_SubstringProperty(t *testing.T) {
	tasks := sampleTasks(4)
	tasks[2].Description = "Refactor The Parser"

	for _, task := range tasks {
		for _, field := range []string{task.Title, task.Description, task.Status} {
			for i := 0; i < len(field); i++ {
				for j := i + 1; j <= len(field); j++ {
					if !matches(task, strings.ToLower(field[i:j])) {
						t.Fatalf("Expected %q to match task %s", field[i:j], task.ID)
					}
				}
			}
		}
	}
}

func TestFilter_DoesNotAliasInput(t *testing.T) {
	tasks := sampleTasks(3)
	out := Filter(tasks, "")
	out[0].Title = "changed"
	if tasks[0].Title == "changed" {
		t.Error("Filter output must not share storage with its input")
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ n, size, want int }{
		{0, 6, 0},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{8, 6, 2},
		{13, 6, 3},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPaginator_Clamping(t *testing.T) {
	for n := 0; n <= 20; n++ {
		for _, size := range []int{1, 3, 6} {
			p := NewPaginator(size, 5)
			total := TotalPages(n, size)

			if got := p.SetPage(-3, n); got != 1 {
				t.Errorf("n=%d size=%d: SetPage(-3) = %d, want 1", n, size, got)
			}
			want := max(total, 1)
			if got := p.SetPage(total+4, n); got != want {
				t.Errorf("n=%d size=%d: SetPage(%d) = %d, want %d", n, size, total+4, got, want)
			}
		}
	}
}

func TestPaginator_SliceProperty(t *testing.T) {
	for n := 0; n <= 20; n++ {
		tasks := sampleTasks(n)
		p := NewPaginator(6, 5)
		for page := 1; page <= max(TotalPages(n, 6), 1); page++ {
			p.SetPage(page, n)
			got := p.Slice(tasks)

			lo := (page - 1) * 6
			hi := min(page*6, n)
			var want []models.Task
			if n > 0 {
				want = tasks[lo:hi]
			}
			if len(got) > 6 {
				t.Fatalf("n=%d page=%d: page holds %d tasks", n, page, len(got))
			}
			if !reflect.DeepEqual(ids(got), ids(want)) {
				t.Errorf("n=%d page=%d: got %v, want %v", n, page, ids(got), ids(want))
			}
		}
	}
}

func TestPaginator_NextPrevBounds(t *testing.T) {
	p := NewPaginator(6, 5)
	if got := p.Prev(8); got != 1 {
		t.Errorf("Prev on page 1 = %d, want 1", got)
	}
	if got := p.Next(8); got != 2 {
		t.Errorf("Next = %d, want 2", got)
	}
	if got := p.Next(8); got != 2 {
		t.Errorf("Next on last page = %d, want 2", got)
	}
}

func TestPaginator_WindowCoversAllPages(t *testing.T) {
	for n := 0; n <= 60; n += 3 {
		p := NewPaginator(6, 5)
		total := TotalPages(n, 6)
		reachable := map[int]bool{}

		for page := 1; page <= total; page++ {
			p.SetPage(page, n)
			window := p.Window(n)
			if len(window) > 5 {
				t.Fatalf("n=%d: window %v exceeds cap", n, window)
			}
			found := false
			for _, w := range window {
				if w < 1 || w > total {
					t.Fatalf("n=%d: window %v out of range", n, window)
				}
				reachable[w] = true
				found = found || w == page
			}
			if !found {
				t.Errorf("n=%d: current page %d missing from window %v", n, page, window)
			}
		}
		if len(reachable) != total {
			t.Errorf("n=%d: reachable pages %d, want %d", n, len(reachable), total)
		}
	}
}

func TestView_ScenarioA_EightTasksTwoPages(t *testing.T) {
	v := newReadyView(t, sampleTasks(8))

	if got := len(v.Visible()); got != 6 {
		t.Errorf("Expected 6 visible tasks, got %d", got)
	}
	if got := v.TotalPages(); got != 2 {
		t.Errorf("Expected 2 pages, got %d", got)
	}
	if got := v.Summary(); got != "Showing 6 of 8 tasks" {
		t.Errorf("Unexpected summary %q", got)
	}

	v.SetPage(2)
	if got := ids(v.Visible()); !reflect.DeepEqual(got, []string{"t7", "t8"}) {
		t.Errorf("Expected page 2 = [t7 t8], got %v", got)
	}
}

func TestView_ScenarioB_SearchResetsPage(t *testing.T) {
	tasks := sampleTasks(8)
	tasks[6].Title = "Renew passport"
	v := newReadyView(t, tasks)

	v.SetPage(2)
	if v.Page() != 2 {
		t.Fatalf("Expected page 2, got %d", v.Page())
	}

	v.SetSearchTerm("PASSPORT")
	if got := len(v.Filtered()); got != 1 {
		t.Errorf("Expected 1 filtered task, got %d", got)
	}
	if got := v.TotalPages(); got != 1 {
		t.Errorf("Expected 1 page, got %d", got)
	}
	if got := v.Page(); got != 1 {
		t.Errorf("Expected page 1 after search, got %d", got)
	}
	if got := ids(v.Visible()); !reflect.DeepEqual(got, []string{"t7"}) {
		t.Errorf("Expected [t7], got %v", got)
	}
}

func TestView_SearchAlwaysResetsPage(t *testing.T) {
	v := newReadyView(t, sampleTasks(30))
	for p := 2; p <= 5; p++ {
		v.SetPage(p)
		v.SetSearchTerm("task")
		if v.Page() != 1 {
			t.Errorf("Expected page 1 after search from page %d, got %d", p, v.Page())
		}
	}
}

func TestView_ScenarioC_Failure(t *testing.T) {
	v := NewView(NewLoader(&stubFetcher{err: errors.New("Failed to fetch tasks")}), nil)
	v.Load(context.Background())

	if v.Loading() {
		t.Error("Expected loading to be false after failure")
	}
	if got := v.Error(); got != "Failed to fetch tasks" {
		t.Errorf("Expected error message, got %q", got)
	}
	if len(v.Visible()) != 0 {
		t.Error("Expected no visible tasks on failure")
	}
}

func TestView_ScenarioD_EmptyCollection(t *testing.T) {
	v := newReadyView(t, []models.Task{})

	if v.Error() != "" {
		t.Errorf("Expected no error, got %q", v.Error())
	}
	if got := v.TotalPages(); got != 0 {
		t.Errorf("Expected 0 pages, got %d", got)
	}
	if got := v.Page(); got != 1 {
		t.Errorf("Expected page 1, got %d", got)
	}
	if v.SetPage(9) != 1 {
		t.Error("Expected SetPage on empty list to stay on 1")
	}
	if len(v.Visible()) != 0 {
		t.Error("Expected empty page")
	}
	if v.PageNumbers() != nil {
		t.Errorf("Expected no page numbers, got %v", v.PageNumbers())
	}
}

func TestView_LoadingBeforeActivation(t *testing.T) {
	v := NewView(NewLoader(&stubFetcher{}), nil)
	if !v.Loading() {
		t.Error("Expected loading before the first retrieval completes")
	}
	if v.Visible() != nil && len(v.Visible()) != 0 {
		t.Error("Expected no visible tasks while loading")
	}
}
