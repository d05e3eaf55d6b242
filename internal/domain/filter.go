package domain

// Filter selects which tasks are rendered. It never affects the stored
// collection, only the derived view.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// String returns the display string.
func (f Filter) String() string {
	return string(f)
}

// Matches returns true if the task passes the filter predicate.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Apply filters a list of tasks, preserving the input order among
// retained rows.
func (f Filter) Apply(tasks []Task) []Task {
	if f == FilterAll || f == "" {
		return tasks
	}

	result := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		if f.Matches(task) {
			result = append(result, task)
		}
	}
	return result
}

// Counts holds per-bucket totals over the unfiltered collection.
type Counts struct {
	All       int
	Pending   int
	Completed int
}

// CountTasks tallies the filter buckets from the full collection.
func CountTasks(tasks []Task) Counts {
	c := Counts{All: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
