package core

// BudgetKind qualifies how an extracted budget figure should be interpreted.
type BudgetKind string

const (
	// BudgetCeiling marks the budget as an upper bound ("under 70000").
	BudgetCeiling BudgetKind = "max"
	// BudgetFloor marks the budget as a lower bound ("above 20000").
	BudgetFloor BudgetKind = "min"
)

// Entities holds structured values extracted from free text. Fields are zero
// valued when not detected; JSON serialization omits absent fields so keys are
// never null-valued.
type Entities struct {
	Category    string     `json:"category,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	Budget      float64    `json:"budget,omitempty"`
	BudgetKind  BudgetKind `json:"budgetKind,omitempty"`
	Features    []string   `json:"features,omitempty"`
	OrderNumber string     `json:"orderNumber,omitempty"`
}

// IsZero reports whether no entity was detected at all.
func (e Entities) IsZero() bool {
	return e.Category == "" && e.Brand == "" && e.Budget == 0 &&
		e.BudgetKind == "" && len(e.Features) == 0 && e.OrderNumber == ""
}

// Clone returns a copy with an independent Features slice.
func (e Entities) Clone() Entities {
	cp := e
	if len(e.Features) > 0 {
		cp.Features = make([]string, len(e.Features))
		copy(cp.Features, e.Features)
	}
	return cp
}

// Merge returns the union of e and next where next's detected values win.
// Values already present in e are only overwritten by a newly detected value
// of the same field, never cleared, keeping accumulated session entities
// monotonically enriched across turns.
func (e Entities) Merge(next Entities) Entities {
	merged := e.Clone()
	if next.Category != "" {
		merged.Category = next.Category
	}
	if next.Brand != "" {
		merged.Brand = next.Brand
	}
	if next.Budget != 0 {
		merged.Budget = next.Budget
		merged.BudgetKind = next.BudgetKind
	}
	if len(next.Features) > 0 {
		merged.Features = make([]string, len(next.Features))
		copy(merged.Features, next.Features)
	}
	if next.OrderNumber != "" {
		merged.OrderNumber = next.OrderNumber
	}
	return merged
}
