package auth

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

// Access is what a rule does with a matching request.
type Access string

const (
	AccessPermit Access = "permit"
	AccessDeny   Access = "deny"
	AccessRoles  Access = "roles"
)

// ParseAccess accepts permit, deny, roles and authenticated (any known role).
func ParseAccess(s string) (Access, error) {
	switch Access(strings.ToLower(strings.TrimSpace(s))) {
	case AccessPermit:
		return AccessPermit, nil
	case AccessDeny:
		return AccessDeny, nil
	case AccessRoles, "authenticated":
		return AccessRoles, nil
	default:
		return "", fmt.Errorf("unknown access %q", s)
	}
}

// Rule maps a route pattern to the callers allowed to reach it. Pattern is a
// slash-separated glob: * matches one segment, ** any number of segments.
// Empty Methods means every method.
type Rule struct {
	Pattern string
	Methods []string
	Access  Access
	Roles   []domain.Role
}

// Permit lets anyone through, authenticated or not.
func Permit(pattern string, methods ...string) Rule {
	return Rule{Pattern: pattern, Methods: methods, Access: AccessPermit}
}

// Deny rejects everyone.
func Deny(pattern string, methods ...string) Rule {
	return Rule{Pattern: pattern, Methods: methods, Access: AccessDeny}
}

// RequireRoles admits callers holding any of roles.
func RequireRoles(pattern string, roles ...domain.Role) Rule {
	return Rule{Pattern: pattern, Access: AccessRoles, Roles: roles}
}

// Authenticated admits any caller with a valid identity.
func Authenticated(pattern string) Rule {
	return RequireRoles(pattern, domain.Roles()...)
}

// Decision is the outcome of evaluating the policy for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	// DecisionUnauthenticated: the route needs an identity and none was presented.
	DecisionUnauthenticated
	// DecisionForbidden: the caller's role is not allowed on the route.
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

type compiledRule struct {
	Rule
	index         int
	methods       map[string]struct{}
	roles         map[domain.Role]struct{}
	exact         bool
	literalPrefix int
	doubleStars   int
	segments      int
}

// Policy is an immutable, ordered rule table. Build it once at startup and
// share it freely between requests.
type Policy struct {
	rules    []compiledRule
	fallback Access
}

// NewPolicy validates rules and orders them most specific first, so a narrow
// rule is never shadowed by a broader one. Rules of equal specificity keep
// their declaration order. fallback applies when nothing matches and must be
// AccessPermit or AccessDeny.
func NewPolicy(rules []Rule, fallback Access) (*Policy, error) {
	if fallback != AccessPermit && fallback != AccessDeny {
		return nil, fmt.Errorf("policy fallback must be %q or %q, got %q", AccessPermit, AccessDeny, fallback)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		cr, err := compileRule(i, r)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, cr)
	}

	sort.SliceStable(compiled, func(i, j int) bool {
		return moreSpecific(compiled[i], compiled[j])
	})

	return &Policy{rules: compiled, fallback: fallback}, nil
}

func compileRule(index int, r Rule) (compiledRule, error) {
	if !strings.HasPrefix(r.Pattern, "/") || !doublestar.ValidatePattern(r.Pattern) {
		return compiledRule{}, fmt.Errorf("rule %d: invalid pattern %q", index, r.Pattern)
	}

	cr := compiledRule{Rule: r, index: index}
	switch r.Access {
	case AccessPermit, AccessDeny:
		if len(r.Roles) > 0 {
			return compiledRule{}, fmt.Errorf("rule %d (%s): roles are only allowed with access %q", index, r.Pattern, AccessRoles)
		}
	case AccessRoles:
		if len(r.Roles) == 0 {
			return compiledRule{}, fmt.Errorf("rule %d (%s): no roles listed", index, r.Pattern)
		}
		cr.roles = make(map[domain.Role]struct{}, len(r.Roles))
		for _, role := range r.Roles {
			if !role.Valid() {
				return compiledRule{}, fmt.Errorf("rule %d (%s): unknown role %q", index, r.Pattern, role)
			}
			cr.roles[role] = struct{}{}
		}
	default:
		return compiledRule{}, fmt.Errorf("rule %d (%s): unknown access %q", index, r.Pattern, r.Access)
	}

	if len(r.Methods) > 0 {
		cr.methods = make(map[string]struct{}, len(r.Methods))
		for _, m := range r.Methods {
			cr.methods[strings.ToUpper(m)] = struct{}{}
		}
	}

	cr.exact = true
	for _, seg := range strings.Split(strings.Trim(r.Pattern, "/"), "/") {
		cr.segments++
		if seg == "**" {
			cr.doubleStars++
		}
		if strings.ContainsAny(seg, "*?[{\\") {
			cr.exact = false
		} else if cr.exact {
			cr.literalPrefix++
		}
	}
	return cr, nil
}

func moreSpecific(a, b compiledRule) bool {
	if a.exact != b.exact {
		return a.exact
	}
	if a.literalPrefix != b.literalPrefix {
		return a.literalPrefix > b.literalPrefix
	}
	if a.doubleStars != b.doubleStars {
		return a.doubleStars < b.doubleStars
	}
	if a.segments != b.segments {
		return a.segments > b.segments
	}
	return len(a.methods) > 0 && len(b.methods) == 0
}

// Rules returns the rules in evaluation order.
func (p *Policy) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	for i, r := range p.rules {
		out[i] = r.Rule
	}
	return out
}

// Evaluate decides whether a caller may reach method+path. identity is nil
// for anonymous requests. The first matching rule in evaluation order wins.
func (p *Policy) Evaluate(method, requestPath string, identity *domain.Identity) Decision {
	requestPath = CanonicalPath(requestPath)
	method = strings.ToUpper(method)

	for i := range p.rules {
		r := &p.rules[i]
		if !r.matches(method, requestPath) {
			continue
		}
		return r.decide(identity)
	}
	return decideAccess(p.fallback, nil, identity)
}

func (r *compiledRule) matches(method, requestPath string) bool {
	if r.methods != nil {
		if _, ok := r.methods[method]; !ok {
			return false
		}
	}
	if ok, _ := doublestar.Match(r.Pattern, requestPath); ok {
		return true
	}
	// "/a/**" also covers "/a" itself.
	if base, ok := strings.CutSuffix(r.Pattern, "/**"); ok && base != "" {
		matched, _ := doublestar.Match(base, requestPath)
		return matched
	}
	return false
}

func (r *compiledRule) decide(identity *domain.Identity) Decision {
	return decideAccess(r.Access, r.roles, identity)
}

func decideAccess(access Access, roles map[domain.Role]struct{}, identity *domain.Identity) Decision {
	switch access {
	case AccessPermit:
		return DecisionAllow
	case AccessRoles:
		if identity == nil {
			return DecisionUnauthenticated
		}
		if _, ok := roles[identity.Role]; ok {
			return DecisionAllow
		}
		return DecisionForbidden
	default:
		if identity == nil {
			return DecisionUnauthenticated
		}
		return DecisionForbidden
	}
}

// CanonicalPath cleans dot segments and duplicate or trailing slashes.
func CanonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
