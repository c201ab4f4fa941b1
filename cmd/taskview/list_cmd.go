package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/fentz26/taskview/internal/engine"
	"github.com/fentz26/taskview/internal/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print one page of tasks",
	Long:  `Retrieves the task collection once, applies --search and prints page --page.`,
	RunE:  runList,
}

var (
	listSearch string
	listPage   int
)

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Case-insensitive search over title, description and status")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to print (clamped to the valid range)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	client := tui.NewClient(cfg.Endpoint, cfg.Timeout)
	view := engine.NewView(engine.NewLoader(client), engine.NewPaginator(cfg.PageSize, cfg.PageWindow))
	defer view.Close()

	return printPage(cmd.Context(), cmd.OutOrStdout(), view, listSearch, listPage)
}

// printPage loads view, applies the search and page, and writes the visible
// tasks as a table followed by the summary line.
func printPage(ctx context.Context, w io.Writer, view *engine.View, search string, page int) error {
	st := view.Load(ctx)
	if st.Phase == engine.PhaseFailed {
		return fmt.Errorf("Error: %s", st.Err)
	}

	view.SetSearchTerm(search)
	view.SetPage(page)

	visible := view.Visible()
	if len(visible) == 0 {
		if search != "" {
			fmt.Fprintln(w, "No tasks match your search.")
		} else {
			fmt.Fprintln(w, "No tasks yet.")
		}
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE")
		for _, t := range visible {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				t.ID, clip(t.Title, 40), orDash(t.Status), orDash(t.Priority), orDash(t.DueDate))
		}
		tw.Flush()
	}

	if total := view.TotalPages(); total > 1 {
		fmt.Fprintf(w, "Page %d of %d\n", view.Page(), total)
	}
	fmt.Fprintln(w, view.Summary())
	return nil
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
