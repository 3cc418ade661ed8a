package cli

import "trackup/internal/model"

func modelTask(title, assignee, status string) model.Task {
	return model.Task{Title: title, Assignee: assignee, Status: model.TaskStatus(status)}
}
