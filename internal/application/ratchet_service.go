package application

import (
	"fmt"
	"log/slog"

	"github.com/abdidvp/archguard/internal/domain"
	"github.com/abdidvp/archguard/internal/domain/apiban"
)

// RatchetService lowers API-ban baselines to the usage currently in the
// tree, so that migrated call sites cannot silently come back.
type RatchetService struct {
	walker domain.SourceWalker
}

func NewRatchetService(walker domain.SourceWalker) *RatchetService {
	return &RatchetService{walker: walker}
}

// Tighten scans every API-ban group of the policy and returns the policy
// with lowered baselines plus the list of changes. The input policy is not
// modified. Unlike a check run, a source root that cannot be scanned is an
// error: its baselines cannot be verified.
func (s *RatchetService) Tighten(root string, policy domain.Policy) (domain.Policy, []domain.BaselineChange, error) {
	out := policy
	out.APIBans = make([]domain.APIBanGroup, len(policy.APIBans))

	var changes []domain.BaselineChange
	for i, group := range policy.APIBans {
		files, err := s.walker.Walk(root, group.SourceRoot, group.Include, group.Exclude)
		if err != nil {
			return domain.Policy{}, nil, fmt.Errorf("scanning %s: %w", group.SourceRoot, err)
		}

		group.Rules = make([]domain.APIBanRule, len(policy.APIBans[i].Rules))
		for j, rule := range policy.APIBans[i].Rules {
			tightened, ruleChanges := apiban.Tighten(apiban.Tally(files, rule), rule)
			group.Rules[j] = tightened
			for _, c := range ruleChanges {
				c.Group = group.Name
				changes = append(changes, c)
			}
		}
		out.APIBans[i] = group
	}

	slog.Debug("baseline ratchet planned", "changes", len(changes))
	return out, changes, nil
}
