package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ProjectStatus is the project lifecycle state.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "active"
	ProjectStatusCompleted ProjectStatus = "completed"
	ProjectStatusOnHold    ProjectStatus = "on-hold"
	ProjectStatusCancelled ProjectStatus = "cancelled"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusOnHold, ProjectStatusCancelled:
		return true
	default:
		return false
	}
}

// Project is a unit of work billed to a client. ClientID is a weak
// reference; no referential integrity is enforced.
type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Budget      float64       `json:"budget"`
	Currency    string        `json:"currency"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"clientId"`
	Manager     string        `json:"manager"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Notes       string        `json:"notes"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProjectParams carries the caller-supplied fields for a new project.
type ProjectParams struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Budget      float64       `json:"budget"`
	Currency    string        `json:"currency"`
	Status      ProjectStatus `json:"status"`
	ClientID    string        `json:"clientId"`
	Manager     string        `json:"manager"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Notes       string        `json:"notes"`
}

// NewProject builds a project, active and USD by default. Tags keep
// insertion order with duplicates removed.
func NewProject(p ProjectParams) Project {
	if strings.TrimSpace(p.Currency) == "" {
		p.Currency = "USD"
	}
	if p.Status == "" {
		p.Status = ProjectStatusActive
	}
	now := time.Now().UTC()
	project := Project{
		ID:          uuid.NewString(),
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Currency:    p.Currency,
		Status:      p.Status,
		ClientID:    p.ClientID,
		Manager:     p.Manager,
		Category:    p.Category,
		Tags:        []string{},
		Notes:       p.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, tag := range p.Tags {
		project.addTag(tag)
	}
	return project
}

// Duration returns the project length in whole days, 0 when either date is
// missing.
func (p Project) Duration() int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	return int(p.EndDate.Sub(*p.StartDate).Hours() / 24)
}

// FormattedDuration renders the duration as days, months or years.
func (p Project) FormattedDuration() string {
	days := p.Duration()
	switch {
	case days == 0:
		return "N/A"
	case days < 30:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		months := days / 30
		rest := days % 30
		out := fmt.Sprintf("%d month%s", months, plural(months))
		if rest > 0 {
			out += fmt.Sprintf(", %d days", rest)
		}
		return out
	default:
		years := days / 365
		months := (days % 365) / 30
		out := fmt.Sprintf("%d year%s", years, plural(years))
		if months > 0 {
			out += fmt.Sprintf(", %d months", months)
		}
		return out
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// Overdue reports whether the deadline passed while the project is still
// open.
func (p Project) Overdue(now time.Time) bool {
	if p.EndDate == nil || p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled {
		return false
	}
	return now.After(*p.EndDate)
}

// DaysUntilDeadline returns the remaining days, negative when overdue. The
// second result is false when no deadline is set.
func (p Project) DaysUntilDeadline(now time.Time) (int, bool) {
	if p.EndDate == nil {
		return 0, false
	}
	return int(p.EndDate.Sub(now).Hours() / 24), true
}

// Progress returns the elapsed share of the schedule as 0-100.
func (p Project) Progress(now time.Time) int {
	if p.StartDate == nil || p.EndDate == nil {
		return 0
	}
	if now.Before(*p.StartDate) {
		return 0
	}
	if now.After(*p.EndDate) {
		return 100
	}
	total := p.EndDate.Sub(*p.StartDate)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(*p.StartDate)
	return int(float64(elapsed)/float64(total)*100 + 0.5)
}

var budgetPrinter = message.NewPrinter(language.AmericanEnglish)

// FormattedBudget renders the budget with thousands grouping, prefixed by
// the currency code.
func (p Project) FormattedBudget() string {
	return budgetPrinter.Sprintf("%s %.2f", p.Currency, p.Budget)
}

// ProjectSummary is the condensed view of a project with its schedule
// state evaluated at a point in time.
type ProjectSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"startDate"`
	EndDate     *time.Time    `json:"endDate"`
	Budget      float64       `json:"budget"`
	Currency    string        `json:"currency"`
	ClientID    string        `json:"clientId"`
	Manager     string        `json:"manager"`
	Category    string        `json:"category"`
	Tags        []string      `json:"tags"`
	Duration    string        `json:"duration"`
	Progress    int           `json:"progress"`
	Overdue     bool          `json:"isOverdue"`
}

// Summary condenses the project, evaluating schedule fields against now.
func (p Project) Summary(now time.Time) ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Currency:    p.Currency,
		ClientID:    p.ClientID,
		Manager:     p.Manager,
		Category:    p.Category,
		Tags:        append([]string(nil), p.Tags...),
		Duration:    p.FormattedDuration(),
		Progress:    p.Progress(now),
		Overdue:     p.Overdue(now),
	}
}

// AddTag appends the tag unless already present.
func (p *Project) AddTag(tag string) {
	if p.addTag(tag) {
		p.UpdatedAt = time.Now().UTC()
	}
}

func (p *Project) addTag(tag string) bool {
	if tag == "" || p.HasTag(tag) {
		return false
	}
	p.Tags = append(p.Tags, tag)
	return true
}

// RemoveTag drops the first occurrence of the tag.
func (p *Project) RemoveTag(tag string) {
	for i, t := range p.Tags {
		if t == tag {
			p.Tags = append(p.Tags[:i], p.Tags[i+1:]...)
			p.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MarkCompleted transitions the project to completed.
func (p *Project) MarkCompleted() {
	p.Status = ProjectStatusCompleted
	p.UpdatedAt = time.Now().UTC()
}

// MarkOnHold transitions the project to on-hold.
func (p *Project) MarkOnHold() {
	p.Status = ProjectStatusOnHold
	p.UpdatedAt = time.Now().UTC()
}

// Cancel transitions the project to cancelled.
func (p *Project) Cancel() {
	p.Status = ProjectStatusCancelled
	p.UpdatedAt = time.Now().UTC()
}

// ProjectPatch whitelists the mutable fields of a project.
type ProjectPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      *float64
	Currency    *string
	Status      *ProjectStatus
	ClientID    *string
	Manager     *string
	Category    *string
	Tags        *[]string
	Notes       *string
}

// Apply sets the provided fields and refreshes UpdatedAt. Replacing Tags
// re-runs de-duplication.
func (p *Project) Apply(patch ProjectPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.StartDate != nil {
		p.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		p.EndDate = patch.EndDate
	}
	if patch.Budget != nil {
		p.Budget = *patch.Budget
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.ClientID != nil {
		p.ClientID = *patch.ClientID
	}
	if patch.Manager != nil {
		p.Manager = *patch.Manager
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = []string{}
		for _, tag := range *patch.Tags {
			p.addTag(tag)
		}
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	p.UpdatedAt = time.Now().UTC()
}

// Validate checks required fields, date ordering, budget and status.
func (p Project) Validate() ValidationResult {
	var errs []string

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "project name is required")
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		errs = append(errs, "start date cannot be after end date")
	}
	if p.Budget < 0 {
		errs = append(errs, "budget cannot be negative")
	}
	if !p.Status.Valid() {
		errs = append(errs, "invalid project status")
	}

	return newValidationResult(errs)
}
