// Package access decides which records a caller may see. Visibility is a
// pure function of the caller's role, the caller's active department codes
// and the record's department attribution.
package access

import "unidash/internal/models"

// Scoped is any record whose department attribution can be resolved to a
// single code. An empty code means the attribution is unresolvable.
type Scoped interface {
	ScopeCode() string
}

// Scope carries a caller's identity for visibility checks. Codes is ignored
// for admins; for lecturers it is the literal allowed set, so an empty set
// means the lecturer sees nothing.
type Scope struct {
	Role  string
	Codes []string
}

// AdminScope is the unrestricted scope used by admin callers.
var AdminScope = Scope{Role: models.RoleAdmin}

// LecturerScope builds a lecturer scope from active department assignments.
func LecturerScope(assignments []models.DepartmentAssignment) Scope {
	s := Scope{Role: models.RoleLecturer}
	for _, a := range assignments {
		if a.Active {
			s.Codes = append(s.Codes, a.DepartmentCode)
		}
	}
	return s
}

// Allows reports whether the scope covers the given department code.
func (s Scope) Allows(code string) bool {
	if s.Role == models.RoleAdmin {
		return true
	}
	if code == "" {
		return false
	}
	for _, c := range s.Codes {
		if c == code {
			return true
		}
	}
	return false
}

// IsVisible reports whether the record may be shown to the caller.
// Admins see everything; a lecturer with no active assignments sees
// nothing, never everything.
func IsVisible(s Scope, rec Scoped) bool {
	return s.Allows(rec.ScopeCode())
}

// Filter narrows records to the visible subset, preserving order.
func Filter[T Scoped](s Scope, recs []T) []T {
	if s.Role == models.RoleAdmin {
		return recs
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if IsVisible(s, r) {
			out = append(out, r)
		}
	}
	return out
}
