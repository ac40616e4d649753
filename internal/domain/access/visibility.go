package access

// VisibilityScope restricts who can see a finance record.
type VisibilityScope string

const (
	// ScopeFinance is visible to everyone working with the books.
	ScopeFinance VisibilityScope = "finance"
	// ScopeBoard is visible to the board only.
	ScopeBoard VisibilityScope = "board"
)

// AllVisibilityScopes lists scopes from least to most restricted.
var AllVisibilityScopes = []VisibilityScope{ScopeFinance, ScopeBoard}

// Valid reports whether s is a known scope.
func (s VisibilityScope) Valid() bool {
	return s == ScopeFinance || s == ScopeBoard
}

// ResolveAllowedVisibilityScopes returns the scopes p may read and write, in
// the order of AllVisibilityScopes. The first element is the default scope for
// new records. An empty result means no finance access at all.
func ResolveAllowedVisibilityScopes(p *Principal) []VisibilityScope {
	if p == nil {
		return nil
	}
	if p.IsAdmin() {
		return append([]VisibilityScope(nil), AllVisibilityScopes...)
	}

	var scopes []VisibilityScope
	if HasPermission(p, PermFinanceRead) {
		scopes = append(scopes, ScopeFinance)
	}
	if HasPermission(p, PermFinanceBoard) {
		scopes = append(scopes, ScopeBoard)
	}
	return scopes
}

// IsScopeAllowed reports whether scope is among p's allowed scopes.
func IsScopeAllowed(p *Principal, scope VisibilityScope) bool {
	for _, s := range ResolveAllowedVisibilityScopes(p) {
		if s == scope {
			return true
		}
	}
	return false
}
