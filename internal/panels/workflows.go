// Package panels serves the admin automation and AI panels. Workflows and
// predictions are fixtures kept in memory; running a workflow only updates
// its counters.
package panels

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed workflows.yaml
var workflowsYAML []byte

var (
	ErrNotFound       = errors.New("workflow not found")
	ErrDeleteDeclined = errors.New("delete not confirmed")
)

type Schedule struct {
	Frequency string   `yaml:"frequency" json:"frequency"`
	Time      string   `yaml:"time" json:"time"`
	Days      []string `yaml:"days" json:"days,omitempty"`
	Interval  int      `yaml:"interval" json:"interval,omitempty"`
}

type Condition struct {
	ID       string `yaml:"id" json:"id"`
	Field    string `yaml:"field" json:"field"`
	Operator string `yaml:"operator" json:"operator"`
	Value    any    `yaml:"value" json:"value"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

type Action struct {
	ID      string         `yaml:"id" json:"id"`
	Type    string         `yaml:"type" json:"type"`
	Config  map[string]any `yaml:"config" json:"config"`
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Order   int            `yaml:"order" json:"order"`
}

type Workflow struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Description    string      `json:"description"`
	Trigger        string      `json:"trigger"`
	Status         string      `json:"status"`
	Schedule       *Schedule   `json:"schedule,omitempty"`
	Conditions     []Condition `json:"conditions"`
	Actions        []Action    `json:"actions"`
	LastRun        *time.Time  `json:"lastRun,omitempty"`
	NextRun        *time.Time  `json:"nextRun,omitempty"`
	ExecutionCount int         `json:"executionCount"`
	SuccessRate    float64     `json:"successRate"`
}

type fixtureWorkflow struct {
	ID             string        `yaml:"id"`
	Name           string        `yaml:"name"`
	Description    string        `yaml:"description"`
	Trigger        string        `yaml:"trigger"`
	Status         string        `yaml:"status"`
	Schedule       *Schedule     `yaml:"schedule"`
	Conditions     []Condition   `yaml:"conditions"`
	Actions        []Action      `yaml:"actions"`
	LastRunAgo     time.Duration `yaml:"last_run_ago"`
	NextRunIn      time.Duration `yaml:"next_run_in"`
	ExecutionCount int           `yaml:"execution_count"`
	SuccessRate    float64       `yaml:"success_rate"`
}

var (
	validTriggers = map[string]bool{"schedule": true, "event": true, "manual": true, "webhook": true}
	validStatuses = map[string]bool{"active": true, "inactive": true, "error": true}
)

type Workflows struct {
	mu    sync.RWMutex
	items map[string]Workflow
	order []string
	now   func() time.Time
}

// NewWorkflows loads the embedded fixtures, with run times relative to now.
func NewWorkflows(now func() time.Time) (*Workflows, error) {
	var doc struct {
		Workflows []fixtureWorkflow `yaml:"workflows"`
	}
	if err := yaml.Unmarshal(workflowsYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse workflows fixture: %w", err)
	}
	w := &Workflows{items: map[string]Workflow{}, now: now}
	t := now()
	for _, f := range doc.Workflows {
		wf := Workflow{
			ID:             f.ID,
			Name:           f.Name,
			Description:    f.Description,
			Trigger:        f.Trigger,
			Status:         f.Status,
			Schedule:       f.Schedule,
			Conditions:     f.Conditions,
			Actions:        f.Actions,
			ExecutionCount: f.ExecutionCount,
			SuccessRate:    f.SuccessRate,
		}
		if f.LastRunAgo > 0 {
			last := t.Add(-f.LastRunAgo)
			wf.LastRun = &last
		}
		if f.NextRunIn > 0 {
			next := t.Add(f.NextRunIn)
			wf.NextRun = &next
		}
		w.put(wf)
	}
	return w, nil
}

func (w *Workflows) put(wf Workflow) {
	if wf.Conditions == nil {
		wf.Conditions = []Condition{}
	}
	if wf.Actions == nil {
		wf.Actions = []Action{}
	}
	sort.SliceStable(wf.Actions, func(i, j int) bool { return wf.Actions[i].Order < wf.Actions[j].Order })
	if _, ok := w.items[wf.ID]; !ok {
		w.order = append(w.order, wf.ID)
	}
	w.items[wf.ID] = wf
}

func (w *Workflows) List() []Workflow {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Workflow, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.items[id])
	}
	return out
}

func (w *Workflows) Get(id string) (Workflow, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	wf, ok := w.items[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	return wf, nil
}

func validate(wf Workflow) error {
	if wf.Name == "" {
		return errors.New("name is required")
	}
	if !validTriggers[wf.Trigger] {
		return fmt.Errorf("invalid trigger %q", wf.Trigger)
	}
	if !validStatuses[wf.Status] {
		return fmt.Errorf("invalid status %q", wf.Status)
	}
	return nil
}

// Create adds a workflow. Missing fields get the defaults of a new manual,
// inactive workflow.
func (w *Workflows) Create(wf Workflow) (Workflow, error) {
	if wf.Name == "" {
		wf.Name = "Novi Workflow"
	}
	if wf.Description == "" {
		wf.Description = "Opis novog workflow-a"
	}
	if wf.Trigger == "" {
		wf.Trigger = "manual"
	}
	if wf.Status == "" {
		wf.Status = "inactive"
	}
	if err := validate(wf); err != nil {
		return Workflow{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	wf.ID = fmt.Sprintf("%d", w.now().UnixNano())
	wf.LastRun, wf.NextRun = nil, nil
	wf.ExecutionCount, wf.SuccessRate = 0, 0
	w.put(wf)
	return w.items[wf.ID], nil
}

// Update replaces the editable fields. Run history is kept.
func (w *Workflows) Update(id string, wf Workflow) (Workflow, error) {
	if err := validate(wf); err != nil {
		return Workflow{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	cur, ok := w.items[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	cur.Name = wf.Name
	cur.Description = wf.Description
	cur.Trigger = wf.Trigger
	cur.Status = wf.Status
	cur.Schedule = wf.Schedule
	cur.Conditions = wf.Conditions
	cur.Actions = wf.Actions
	w.put(cur)
	return w.items[id], nil
}

func (w *Workflows) Delete(id string, confirmed bool) error {
	if !confirmed {
		return ErrDeleteDeclined
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.items[id]; !ok {
		return ErrNotFound
	}
	delete(w.items, id)
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return nil
}

// Toggle switches a workflow between active and inactive.
func (w *Workflows) Toggle(id string) (Workflow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wf, ok := w.items[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	if wf.Status == "active" {
		wf.Status = "inactive"
	} else {
		wf.Status = "active"
	}
	w.items[id] = wf
	return wf, nil
}

// Run records a run: last run becomes now, the execution count grows by one
// and the success rate rises by half a point up to 100.
func (w *Workflows) Run(id string) (Workflow, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	wf, ok := w.items[id]
	if !ok {
		return Workflow{}, ErrNotFound
	}
	now := w.now()
	wf.LastRun = &now
	wf.ExecutionCount++
	wf.SuccessRate = min(100, wf.SuccessRate+0.5)
	w.items[id] = wf
	return wf, nil
}
