package handler

import (
	"strings"

	"dashboard-service/internal/upstream"
)

// ParseBulkTasks turns the bulk-add textarea into task inputs. One task per
// line: name, link, then everything after the second comma is the
// description. Lines missing a name or a link are dropped.
func ParseBulkTasks(text string) []upstream.TaskInput {
	var tasks []upstream.TaskInput
	for _, line := range strings.Split(text, "\n") {
		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		link := strings.TrimSpace(parts[1])
		if name == "" || link == "" {
			continue
		}
		desc := strings.TrimSpace(strings.Join(parts[2:], ","))
		tasks = append(tasks, upstream.TaskInput{Name: name, Link: link, Description: desc})
	}
	return tasks
}
