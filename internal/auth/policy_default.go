package auth

import (
	"fmt"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// DefaultRules is the route table of the inventory API. Unlisted routes fall
// to the configured fallback, which defaults to deny.
func DefaultRules() []Rule {
	return []Rule{
		Permit("/api/auth/authenticate"),
		Permit("/api/users/register"),
		Permit("/health/**"),
		Permit("/metrics"),

		RequireRoles("/api/categories/getAll", domain.RoleUser, domain.RoleAdmin),
		RequireRoles("/api/categories/all", domain.RoleUser, domain.RoleAdmin),
		RequireRoles("/api/suppliers/getAll", domain.RoleUser, domain.RoleAdmin),
		RequireRoles("/api/suppliers/all", domain.RoleUser, domain.RoleAdmin),

		RequireRoles("/api/categories/**", domain.RoleAdmin),
		RequireRoles("/api/suppliers/**", domain.RoleAdmin),
		RequireRoles("/api/products/**", domain.RoleUser, domain.RoleAdmin),
		RequireRoles("/api/orders/**", domain.RoleUser, domain.RoleAdmin),
	}
}

// BuildPolicy compiles the policy from file, or from DefaultRules when file is
// empty. A default set in the file wins over fallback.
func BuildPolicy(file, fallback string) (*Policy, error) {
	rules := DefaultRules()
	if file != "" {
		loaded, fileDefault, err := LoadPolicyFile(file)
		if err != nil {
			return nil, err
		}
		rules = loaded
		if fileDefault != "" {
			fallback = fileDefault
		}
	}

	access, err := ParseAccess(fallback)
	if err != nil {
		return nil, fmt.Errorf("policy default: %w", err)
	}
	return NewPolicy(rules, access)
}
