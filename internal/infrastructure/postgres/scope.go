package postgres

import "strings"

// joinOr combines scope clauses into a single OR expression. Visibility
// scopes union across roles; evaluating them as one predicate keeps each row
// in the result exactly once.
func joinOr(clauses []string) string {
	if len(clauses) == 1 {
		return clauses[0]
	}
	return "(" + strings.Join(clauses, " OR ") + ")"
}
