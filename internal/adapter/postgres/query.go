package postgres

import (
	"fmt"
	"strings"

	"club-recruitment/internal/core/port"
)

// whereBuilder accumulates AND-ed conditions with positional arguments.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends cond, replacing each "?" with the next placeholder.
func (w *whereBuilder) add(cond string, args ...any) {
	for _, a := range args {
		w.args = append(w.args, a)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(w.args)), 1)
	}
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// limitOffset appends LIMIT/OFFSET placeholders for p.
func (w *whereBuilder) limitOffset(p port.PageRequest) string {
	if p.Limit <= 0 {
		return ""
	}
	w.args = append(w.args, p.Limit, p.Offset())
	return fmt.Sprintf("LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
}

// campaignOrder returns a whitelisted ORDER BY clause. The id tie-break
// keeps pagination stable.
func campaignOrder(s port.CampaignSort) string {
	switch s {
	case port.SortTitle:
		return "ORDER BY title ASC, id ASC"
	case port.SortStartDate:
		return "ORDER BY start_date ASC, id ASC"
	case port.SortEndDate:
		return "ORDER BY end_date ASC, id ASC"
	default:
		return "ORDER BY created_at DESC, id ASC"
	}
}
