package player

import "slices"

// RecentObjectives is what the generator must not repeat: yesterday's IDs and,
// for multi-cycle cooldowns, the days before that (nearest first).
type RecentObjectives struct {
	Yesterday []string
	Earlier   [][]string
}

func (r RecentObjectives) excludes(o Objective, multiCycle bool) bool {
	if slices.Contains(r.Yesterday, o.ID) {
		return true
	}
	if !multiCycle || o.Cooldown <= 1 {
		return false
	}
	for i := 0; i < o.Cooldown-1 && i < len(r.Earlier); i++ {
		if slices.Contains(r.Earlier[i], o.ID) {
			return true
		}
	}
	return false
}

// WeakAttributes lists the tracked attributes below the weak threshold, in
// WeakOrder.
func WeakAttributes(attrs Attributes, below int) []Attribute {
	weak := make([]Attribute, 0, len(WeakOrder))
	for _, attr := range WeakOrder {
		if attrs.Get(attr) < below {
			weak = append(weak, attr)
		}
	}
	return weak
}

// GenerateObjectives proposes today's objectives: a corrective per weak
// attribute, support filler, then one preventive. Selection is deterministic
// and follows catalog order. An empty result is legal when everything is on
// cooldown.
func GenerateObjectives(attrs Attributes, _ []Effect, recent RecentObjectives, rules Rules) []Objective {
	pool := rules.Catalog.entries
	selected := make([]Objective, 0, rules.MaxObjectives)

	available := func(o Objective, category Category) bool {
		if o.Category != category || recent.excludes(o, rules.MultiCycleCooldown) {
			return false
		}
		return !slices.ContainsFunc(selected, func(s Objective) bool { return s.ID == o.ID })
	}

	for _, attr := range WeakAttributes(attrs, rules.WeakBelow) {
		for _, o := range pool {
			if o.HasTarget(attr) && available(o, CategoryCorrective) {
				selected = append(selected, o.clone())
				break
			}
		}
	}

	for _, o := range pool {
		if len(selected) >= rules.SupportFillCap {
			break
		}
		if available(o, CategorySupport) {
			selected = append(selected, o.clone())
		}
	}

	if len(selected) < rules.MaxObjectives {
		for _, o := range pool {
			if available(o, CategoryPreventive) {
				selected = append(selected, o.clone())
				break
			}
		}
	}

	if len(selected) > rules.MaxObjectives {
		selected = selected[:rules.MaxObjectives]
	}
	return selected
}

func objectiveIDs(objectives []Objective) []string {
	ids := make([]string, 0, len(objectives))
	for _, o := range objectives {
		ids = append(ids, o.ID)
	}
	return ids
}
