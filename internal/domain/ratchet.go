package domain

// BaselineChange records one lowered baseline entry. To is zero when the
// entry is dropped because the file no longer uses the token.
type BaselineChange struct {
	Group string `json:"group"`
	Token string `json:"token"`
	Path  string `json:"path"`
	From  int    `json:"from"`
	To    int    `json:"to"`
}

// Dropped reports whether the change removes the baseline entry.
func (c BaselineChange) Dropped() bool { return c.To == 0 }

// RatchetPlan lists the baseline entries that can be lowered to the usage
// currently in the tree. Baselines only ever move down.
type RatchetPlan struct {
	Changes    []BaselineChange `json:"changes"`
	PolicyPath string           `json:"policy_path,omitempty"`
	Applied    bool             `json:"applied"`
}
