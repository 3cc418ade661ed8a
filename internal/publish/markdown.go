// Package publish renders team progress reports as Markdown.
package publish

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"trackup/internal/model"
)

type RenderOptions struct {
	// GeneratedAt is stamped into the report. Zero omits it.
	GeneratedAt time.Time
}

// RenderTeamMarkdown renders team and the task summaries of its members.
// details is keyed by member name; members without an entry are listed with
// no tasks.
func RenderTeamMarkdown(team model.Team, details map[string]model.MemberDetail, opt RenderOptions) (string, error) {
	name := strings.TrimSpace(team.Name)
	if name == "" {
		return "", fmt.Errorf("missing team name")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + name)
	writeLn("")

	done, total := 0, 0
	for _, m := range team.Members {
		d := details[m]
		done += d.CompletedTasks
		total += d.TotalTasks
	}

	writeLn("## Summary")
	writeLn("")
	writeLn(fmt.Sprintf("- Members: %d", len(team.Members)))
	writeLn(fmt.Sprintf("- Tasks completed: %d/%d", done, total))
	if !opt.GeneratedAt.IsZero() {
		writeLn("- Generated: " + opt.GeneratedAt.UTC().Format(time.RFC3339))
	}

	if len(team.Members) == 0 {
		writeLn("")
		writeLn("No members yet.")
		return buf.String(), nil
	}

	for _, m := range team.Members {
		d := details[m]
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d/%d)", m, d.CompletedTasks, d.TotalTasks))
		writeLn("")
		if len(d.Tasks) == 0 {
			writeLn("No tasks assigned.")
			continue
		}
		for _, t := range d.Tasks {
			writeLn(taskLine(t))
		}
	}
	return buf.String(), nil
}

func taskLine(t model.Task) string {
	box := "[ ]"
	if t.Status == model.TaskCompleted {
		box = "[x]"
	}
	line := "- " + box + " " + strings.TrimSpace(t.Title)
	var meta []string
	if s := strings.TrimSpace(string(t.Status)); s != "" && t.Status != model.TaskCompleted {
		meta = append(meta, s)
	}
	if d := strings.TrimSpace(t.Deadline); d != "" {
		meta = append(meta, "due "+d)
	}
	if id := strings.TrimSpace(t.ID); id != "" {
		meta = append(meta, id)
	}
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, ", ") + ")"
	}
	return line
}
