// Package dietary holds members' food restrictions and the catering overview
// built from them.
package dietary

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sommertheater/portal/internal/pkg/validators"
)

var ErrNotFound = errors.New("dietary restriction not found")

type Severity string

const (
	SeverityPreference    Severity = "preference"
	SeverityIntolerance   Severity = "intolerance"
	SeverityAllergy       Severity = "allergy"
	SeveritySevereAllergy Severity = "severe_allergy"
)

// Rank orders severities from mild (1) to severe (4); unknown values rank 0.
func (s Severity) Rank() int {
	switch s {
	case SeverityPreference:
		return 1
	case SeverityIntolerance:
		return 2
	case SeverityAllergy:
		return 3
	case SeveritySevereAllergy:
		return 4
	}
	return 0
}

// Restriction is a single dietary restriction of a member.
type Restriction struct {
	ID        string   `validate:"required,uuid4"`
	UserID    string   `validate:"required,uuid4"`
	Label     string   `validate:"required,notblank,max=100"`
	Severity  Severity `validate:"required,oneof=preference intolerance allergy severe_allergy"`
	Notes     string   `validate:"omitempty,max=1000"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate for validating Restriction struct
func (r *Restriction) Validate() error {
	return validators.Struct(r)
}

// Input is the user-editable part of a restriction.
type Input struct {
	Label    string   `json:"label" validate:"required,notblank,max=100"`
	Severity Severity `json:"severity" validate:"required,oneof=preference intolerance allergy severe_allergy"`
	Notes    string   `json:"notes" validate:"omitempty,max=1000"`
}

// Validate for validating Input struct
func (i *Input) Validate() error {
	return validators.Struct(i)
}

// CateringItem aggregates all restrictions sharing a label.
type CateringItem struct {
	Label    string
	Count    int
	Severity Severity
	Notes    []string
}

// NormalizeLabel folds labels so "Laktose " and "laktose" group together.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// Summarize groups restrictions by normalized label. Count is the number of
// distinct members, Severity the severest one reported. Items are sorted by
// severity (severest first), then label.
func Summarize(restrictions []*Restriction) []CateringItem {
	type group struct {
		item  CateringItem
		users map[string]struct{}
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, r := range restrictions {
		key := NormalizeLabel(r.Label)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{
				item:  CateringItem{Label: strings.TrimSpace(r.Label), Severity: r.Severity},
				users: make(map[string]struct{}),
			}
			groups[key] = g
			order = append(order, key)
		}
		g.users[r.UserID] = struct{}{}
		if r.Severity.Rank() > g.item.Severity.Rank() {
			g.item.Severity = r.Severity
		}
		if note := strings.TrimSpace(r.Notes); note != "" {
			g.item.Notes = append(g.item.Notes, note)
		}
	}

	items := make([]CateringItem, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.item.Count = len(g.users)
		items = append(items, g.item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Severity.Rank() != items[j].Severity.Rank() {
			return items[i].Severity.Rank() > items[j].Severity.Rank()
		}
		return NormalizeLabel(items[i].Label) < NormalizeLabel(items[j].Label)
	})
	return items
}
