// Package contract defines the wire shapes served by the HTTP lookup
// endpoint and the MCP tools. Dates are YYYY-MM-DD strings and lists are
// never null.
package contract

type Totals struct {
	Categories            []Category `json:"categories"`
	Subtotal              float64    `json:"subtotal"`
	BufferPercentage      float64    `json:"bufferPercentage"`
	BufferDays            float64    `json:"bufferDays"`
	FinalEffort           float64    `json:"finalEffort"`
	TeamSize              int        `json:"teamSize"`
	HolidayCount          int        `json:"holidayCount"`
	EstimatedDurationDays int        `json:"estimatedDurationDays"`
}

type Category struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Effort float64 `json:"effort"`
}

type TimelineEntry struct {
	LeafID       string   `json:"leafId"`
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Path         []string `json:"path"`
	Kind         string   `json:"kind"`
	Start        string   `json:"start"`
	End          string   `json:"end"`
	DurationDays float64  `json:"durationDays"`
	Parallel     bool     `json:"parallel,omitempty"`
	Offset       int      `json:"offset"`
}

type Span struct {
	ID        string  `json:"id"`
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Level     string  `json:"level"`
	ParentID  string  `json:"parentId,omitempty"`
	ParentKey string  `json:"parentKey,omitempty"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Effort    float64 `json:"effort"`
}

type EstimationSummary struct {
	ScreenGroups int     `json:"screenGroups"`
	Screens      int     `json:"screens"`
	TaskGroups   int     `json:"taskGroups"`
	Tasks        int     `json:"tasks"`
	ScreenEffort float64 `json:"screenEffort"`
	TaskEffort   float64 `json:"taskEffort"`
	CalendarDays int     `json:"calendarDays"`
}

type ScheduleRow struct {
	TeamID   string  `json:"teamId"`
	Label    string  `json:"label"`
	Start    string  `json:"start"`
	End      string  `json:"end"`
	Effort   float64 `json:"effort"`
	Parallel bool    `json:"parallel,omitempty"`
}

type Team struct {
	Name        string        `json:"name"`
	Color       string        `json:"color"`
	Assignments int           `json:"assignments"`
	Effort      float64       `json:"effort"`
	Schedule    []ScheduleRow `json:"schedule"`
}

type SubTaskEffort struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Effort float64 `json:"effort"`
}

type TaskEffort struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Effort   float64         `json:"effort"`
	SubTasks []SubTaskEffort `json:"subTasks"`
}

type PlanSummary struct {
	Tasks       int          `json:"tasks"`
	SubTasks    int          `json:"subTasks"`
	Assignments int          `json:"assignments"`
	Unscheduled int          `json:"unscheduled"`
	Teams       []Team       `json:"teams"`
	TaskEfforts []TaskEffort `json:"taskEfforts"`
}

// ProjectView is the computed estimate of one project.
type ProjectView struct {
	Code       string             `json:"code,omitempty"`
	Kind       string             `json:"kind"`
	Name       string             `json:"name"`
	Totals     Totals             `json:"totals"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	DateRange  string             `json:"dateRange"`
	Timeline   []TimelineEntry    `json:"timeline"`
	Spans      []Span             `json:"spans"`
	Estimation *EstimationSummary `json:"estimation,omitempty"`
	Plan       *PlanSummary       `json:"plan,omitempty"`
}

// ProjectListEntry is one published project.
type ProjectListEntry struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// ErrorResponse is the body of every error reply from the lookup server.
type ErrorResponse struct {
	Error string `json:"error"`
}
