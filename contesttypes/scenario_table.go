package contesttypes

import "sort"

// ScenarioIDs returns the distinct scenario ids in ascending order.
func (t ScenarioTable) ScenarioIDs() []int {
	seen := map[int]bool{}
	ids := []int{}
	for _, row := range t {
		if !seen[row.ScenarioID] {
			seen[row.ScenarioID] = true
			ids = append(ids, row.ScenarioID)
		}
	}

	sort.Ints(ids)
	return ids
}

func (t ScenarioTable) NumScenarios() int {
	return len(t.ScenarioIDs())
}

func (t ScenarioTable) GroupByScenario() map[int]ScenarioTable {
	groups := map[int]ScenarioTable{}
	for _, row := range t {
		groups[row.ScenarioID] = append(groups[row.ScenarioID], row)
	}
	return groups
}

// Keep returns the rows whose scenario id is in ids, preserving row order.
func (t ScenarioTable) Keep(ids ...int) ScenarioTable {
	lookup := map[int]bool{}
	for _, id := range ids {
		lookup[id] = true
	}

	out := ScenarioTable{}
	for _, row := range t {
		if lookup[row.ScenarioID] {
			out = append(out, row)
		}
	}

	return out
}

func (t ScenarioTable) ForCompany(company string) (ScenarioRow, bool) {
	for _, row := range t {
		if row.Company == company {
			return row, true
		}
	}
	return ScenarioRow{}, false
}

func (t ScenarioTable) TotalUnits() int {
	total := 0
	for _, row := range t {
		total += row.Units
	}
	return total
}

// NumAllocated counts the rows that were allocated at least one unit.
func (t ScenarioTable) NumAllocated() int {
	n := 0
	for _, row := range t {
		if row.Units > 0 {
			n++
		}
	}
	return n
}
