package player

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Category string

const (
	CategoryCorrective Category = "corrective"
	CategorySupport    Category = "support"
	CategoryPreventive Category = "preventive"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryCorrective, CategorySupport, CategoryPreventive:
		return true
	default:
		return false
	}
}

type CompletionKind string

const (
	CompletionManual CompletionKind = "manual"
	CompletionInput  CompletionKind = "input"
)

type Bound string

const (
	BoundMin Bound = "min"
	BoundMax Bound = "max"
)

type Condition struct {
	Field     string  `json:"field" yaml:"field"`
	Bound     Bound   `json:"bound" yaml:"bound"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
}

type CompletionRule struct {
	Kind       CompletionKind `json:"kind" yaml:"kind"`
	Conditions []Condition    `json:"conditions,omitempty" yaml:"conditions,omitempty"`
}

type Objective struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Category Category       `json:"category" yaml:"category"`
	Rule     CompletionRule `json:"completion" yaml:"completion"`
	Reward   int            `json:"reward" yaml:"reward"`
	Targets  []Attribute    `json:"targets" yaml:"targets"`
	Cooldown int            `json:"cooldown" yaml:"cooldown"`
}

func (o Objective) HasTarget(attr Attribute) bool {
	return slices.Contains(o.Targets, attr)
}

func (o Objective) clone() Objective {
	out := o
	out.Targets = slices.Clone(o.Targets)
	out.Rule.Conditions = slices.Clone(o.Rule.Conditions)
	return out
}

var ErrInvalidCatalog = errors.New("invalid objective catalog")

// Catalog is the read-only objective pool. Construct it with NewCatalog.
type Catalog struct {
	entries []Objective
}

func NewCatalog(objectives ...Objective) (Catalog, error) {
	seen := make(map[string]struct{}, len(objectives))
	entries := make([]Objective, 0, len(objectives))
	for i, o := range objectives {
		o.ID = strings.TrimSpace(o.ID)
		if err := validateObjective(o); err != nil {
			return Catalog{}, fmt.Errorf("%w: entry %d: %v", ErrInvalidCatalog, i, err)
		}
		if _, dup := seen[o.ID]; dup {
			return Catalog{}, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, o.ID)
		}
		seen[o.ID] = struct{}{}
		entries = append(entries, o.clone())
	}
	return Catalog{entries: entries}, nil
}

func validateObjective(o Objective) error {
	if o.ID == "" {
		return errors.New("empty id")
	}
	if !o.Category.IsValid() {
		return fmt.Errorf("objective %q: unknown category %q", o.ID, o.Category)
	}
	if o.Reward < 0 {
		return fmt.Errorf("objective %q: negative reward", o.ID)
	}
	if o.Cooldown < 1 {
		return fmt.Errorf("objective %q: cooldown must be at least 1", o.ID)
	}
	for _, t := range o.Targets {
		if !t.IsValid() {
			return fmt.Errorf("objective %q: unknown target %q", o.ID, t)
		}
	}
	switch o.Rule.Kind {
	case CompletionManual:
		if len(o.Rule.Conditions) > 0 {
			return fmt.Errorf("objective %q: manual rule cannot carry conditions", o.ID)
		}
	case CompletionInput:
		if len(o.Rule.Conditions) == 0 {
			return fmt.Errorf("objective %q: input rule needs conditions", o.ID)
		}
		for _, c := range o.Rule.Conditions {
			if strings.TrimSpace(c.Field) == "" {
				return fmt.Errorf("objective %q: condition without field", o.ID)
			}
			if c.Bound != BoundMin && c.Bound != BoundMax {
				return fmt.Errorf("objective %q: unknown bound %q", o.ID, c.Bound)
			}
		}
	default:
		return fmt.Errorf("objective %q: unknown completion kind %q", o.ID, o.Rule.Kind)
	}
	return nil
}

func (c Catalog) Len() int {
	return len(c.entries)
}

func (c Catalog) MaxCooldown() int {
	longest := 0
	for _, o := range c.entries {
		longest = max(longest, o.Cooldown)
	}
	return longest
}

func (c Catalog) Entries() []Objective {
	out := make([]Objective, 0, len(c.entries))
	for _, o := range c.entries {
		out = append(out, o.clone())
	}
	return out
}

func (c Catalog) Lookup(id string) (Objective, bool) {
	for _, o := range c.entries {
		if o.ID == id {
			return o.clone(), true
		}
	}
	return Objective{}, false
}

func DefaultCatalog() Catalog {
	c, err := NewCatalog(defaultObjectives()...)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultObjectives() []Objective {
	return []Objective{
		{
			ID:       "sleep_7h",
			Title:    "Sleep at least 7 hours",
			Category: CategoryCorrective,
			Rule: CompletionRule{Kind: CompletionInput, Conditions: []Condition{
				{Field: InputSleepHours, Bound: BoundMin, Threshold: 7},
			}},
			Reward:   25,
			Targets:  []Attribute{AttributeEnergy, AttributeFocus},
			Cooldown: 1,
		},
		{
			ID:       "screen_under_4h",
			Title:    "Keep screen time under 4 hours",
			Category: CategoryCorrective,
			Rule: CompletionRule{Kind: CompletionInput, Conditions: []Condition{
				{Field: InputScreenTime, Bound: BoundMax, Threshold: 4},
			}},
			Reward:   20,
			Targets:  []Attribute{AttributeFocus},
			Cooldown: 1,
		},
		{
			ID:       "water_3l",
			Title:    "Drink at least 3L of water",
			Category: CategorySupport,
			Rule: CompletionRule{Kind: CompletionInput, Conditions: []Condition{
				{Field: InputWaterIntake, Bound: BoundMin, Threshold: 3},
			}},
			Reward:   15,
			Targets:  []Attribute{AttributeEnergy},
			Cooldown: 1,
		},
		{
			ID:       "breathing_10min",
			Title:    "10-minute breathing exercise",
			Category: CategorySupport,
			Rule:     CompletionRule{Kind: CompletionManual},
			Reward:   10,
			Targets:  []Attribute{AttributeResilience},
			Cooldown: 1,
		},
		{
			ID:       "short_walk",
			Title:    "Take a short walk",
			Category: CategoryPreventive,
			Rule:     CompletionRule{Kind: CompletionManual},
			Reward:   10,
			Targets:  []Attribute{AttributeHealth, AttributeResilience},
			Cooldown: 2,
		},
		{
			ID:       "plan_day",
			Title:    "Plan tomorrow's tasks",
			Category: CategoryPreventive,
			Rule:     CompletionRule{Kind: CompletionManual},
			Reward:   10,
			Targets:  []Attribute{},
			Cooldown: 2,
		},
	}
}
