package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/rezkam/daily/internal/domain"
)

const (
	shortIDLen  = 8
	titleMaxLen = 48
)

func statusIcon(s domain.Status) string {
	switch s {
	case domain.StatusPending:
		return "○ pending"
	case domain.StatusInProgress:
		return "◐ in_progress"
	case domain.StatusCompleted:
		return "● completed"
	case domain.StatusExpired:
		return "✕ expired"
	default:
		return string(s)
	}
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

func dueString(t *domain.Task) string {
	if t.DueDate == nil {
		return "-"
	}
	return t.DueDate.String()
}

func printTaskTable(out io.Writer, tasks []domain.Task) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tDUE\tTITLE")
	for i := range tasks {
		t := &tasks[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(t.ID), statusIcon(t.Status), t.Priority, t.Category, dueString(t), truncate(t.Title, titleMaxLen))
	}
	w.Flush()
}

func printTask(out io.Writer, t domain.Task) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", t.ID)
	fmt.Fprintf(w, "Title:\t%s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", t.Description)
	}
	fmt.Fprintf(w, "Status:\t%s\n", statusIcon(t.Status))
	fmt.Fprintf(w, "Priority:\t%s\n", t.Priority)
	fmt.Fprintf(w, "Category:\t%s\n", t.Category)
	fmt.Fprintf(w, "Due:\t%s\n", dueString(&t))
	fmt.Fprintf(w, "Created:\t%s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	if t.CompletedAt != nil {
		fmt.Fprintf(w, "Completed:\t%s\n", t.CompletedAt.Local().Format("2006-01-02 15:04"))
	}
	w.Flush()

	if len(t.Comments) > 0 {
		fmt.Fprintln(out, "Comments:")
		for i, c := range t.Comments {
			fmt.Fprintf(out, "  [%d] %s\n", i, c)
		}
	}
}

// writeTask prints one task as a table or, with --json, as a persisted record.
func (a *app) writeTask(out io.Writer, t domain.Task) error {
	if !a.jsonOut {
		printTask(out, t)
		return nil
	}
	data, err := domain.EncodeTask(t)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func (a *app) writeTasks(out io.Writer, tasks []domain.Task) error {
	if !a.jsonOut {
		if len(tasks) == 0 {
			fmt.Fprintln(out, `No tasks found. Create one with: daily add "Your task"`)
			return nil
		}
		printTaskTable(out, tasks)
		return nil
	}
	data, err := domain.EncodeTasks(tasks)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func bar(n, total, width int) string {
	if total == 0 {
		return strings.Repeat("░", width)
	}
	filled := n * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
