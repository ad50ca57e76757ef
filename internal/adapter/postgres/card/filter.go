package card

import (
	"github.com/Masterminds/squirrel"

	"github.com/heartmarshall/cardtrack-backend/internal/domain"
)

// cardColumns is the scalar projection shared by every card read: the
// card's own columns plus the display fields joined from boards, columns
// and users, plus the golden marker. Multi-valued relations (assignees,
// tags) are deliberately absent; they are loaded per row to avoid
// one-to-many row duplication.
var cardColumns = []string{
	"c.id",
	"c.account_id",
	"c.board_id",
	"c.column_id",
	"c.creator_id",
	"c.number",
	"c.title",
	"c.description",
	"c.status",
	"c.due_on",
	"c.last_active_at",
	"c.created_at",
	"c.updated_at",
	"b.name AS board_name",
	"col.name AS column_name",
	"col.color AS column_color",
	"u.name AS creator_name",
	"EXISTS (SELECT 1 FROM golden_cards g WHERE g.card_id = c.id) AS is_golden",
}

// baseSelect returns the SELECT every card read starts from, scoped to one
// account.
func baseSelect(accountID domain.ID) squirrel.SelectBuilder {
	return squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select(cardColumns...).
		From("cards c").
		Join("boards b ON b.id = c.board_id").
		LeftJoin("columns col ON col.id = c.column_id").
		Join("users u ON u.id = c.creator_id").
		Where(squirrel.Eq{"c.account_id": accountID.Bytes()})
}

// buildListQuery compiles a domain.CardFilter into SQL plus its ordered
// argument list. Every filter field contributes its WHERE fragment and its
// bound values as one squirrel expression in a single pass, so placeholder
// order and argument order cannot drift apart: there is no separately
// maintained clause list to fall out of sync with a value list.
//
// Ordering is fixed: most recently active first.
func buildListQuery(accountID domain.ID, f domain.CardFilter) (string, []any, error) {
	qb := baseSelect(accountID)

	if f.AssigneeID != nil {
		qb = qb.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM assignments a WHERE a.card_id = c.id AND a.assignee_id = ?)",
			f.AssigneeID.Bytes(),
		))
	}
	if f.CreatorID != nil {
		qb = qb.Where(squirrel.Eq{"c.creator_id": f.CreatorID.Bytes()})
	}
	if f.BoardID != nil {
		qb = qb.Where(squirrel.Eq{"c.board_id": f.BoardID.Bytes()})
	}
	if f.ColumnID != nil {
		qb = qb.Where(squirrel.Eq{"c.column_id": f.ColumnID.Bytes()})
	}
	if len(f.Status) > 0 {
		qb = qb.Where(squirrel.Eq{"c.status": statusStrings(f.Status)})
	}
	if len(f.ExcludeStatus) > 0 {
		qb = qb.Where(squirrel.NotEq{"c.status": statusStrings(f.ExcludeStatus)})
	}
	if f.IsGolden != nil {
		if *f.IsGolden {
			qb = qb.Where("EXISTS (SELECT 1 FROM golden_cards g WHERE g.card_id = c.id)")
		} else {
			qb = qb.Where("NOT EXISTS (SELECT 1 FROM golden_cards g WHERE g.card_id = c.id)")
		}
	}

	qb = qb.OrderBy("c.last_active_at DESC")

	if f.Limit != nil && *f.Limit >= 0 {
		qb = qb.Limit(uint64(*f.Limit))
	}
	if f.Offset != nil && *f.Offset > 0 {
		qb = qb.Offset(uint64(*f.Offset))
	}

	return qb.ToSql()
}

// statusStrings converts statuses to their stored string form for binding.
func statusStrings(statuses []domain.CardStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
