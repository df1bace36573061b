package app

import (
	"context"
	"math"

	"github.com/josephgoksu/TaskBoard/models"
)

// TaskStats summarizes a task list.
type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	HighPriority   int `json:"highPriority"`
	MediumPriority int `json:"mediumPriority"`
	LowPriority    int `json:"lowPriority"`
	CompletionRate int `json:"completionRate"` // whole percent
}

// Stats computes counts over tasks. CompletionRate is 0 for an empty list.
func Stats(tasks []models.Task) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case models.PriorityHigh:
			s.HighPriority++
		case models.PriorityMedium:
			s.MediumPriority++
		case models.PriorityLow:
			s.LowPriority++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) * 100 / float64(s.Total)))
	}
	return s
}

// FetchTaskStats computes Stats over a fresh remote read. The store is not
// touched.
func (a *TaskApp) FetchTaskStats(ctx context.Context) (TaskStats, error) {
	tasks, err := a.GetAllTasks(ctx)
	if err != nil {
		return TaskStats{}, err
	}
	return Stats(tasks), nil
}
