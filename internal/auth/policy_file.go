package auth

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/aueb-cf/inventory-service/internal/domain"
)

type policyDocument struct {
	Default string       `koanf:"default"`
	Rules   []ruleRecord `koanf:"rules"`
}

type ruleRecord struct {
	Pattern string   `koanf:"pattern"`
	Methods []string `koanf:"methods"`
	Access  string   `koanf:"access"`
	Roles   []string `koanf:"roles"`
}

// LoadPolicyFile reads a YAML rule table:
//
//	default: deny
//	rules:
//	  - pattern: /api/auth/authenticate
//	    access: permit
//	  - pattern: /api/products/**
//	    roles: [USER, ADMIN]
//
// A rule with roles and no access is a roles rule.
//
// File order is not evaluation order. NewPolicy sorts rules most specific
// first (exact paths, then longer literal prefixes), so a broad rule listed
// early never shadows a narrower one. A deny meant to cover a wildcard
// subtree, such as /api/**/admin, loses to /api/products/** on
// /api/products/admin; give it a pattern at least as specific as the rules
// it must override.
func LoadPolicyFile(path string) ([]Rule, string, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, "", fmt.Errorf("load policy file %s: %w", path, err)
	}

	var doc policyDocument
	if err := k.Unmarshal("", &doc); err != nil {
		return nil, "", fmt.Errorf("decode policy file %s: %w", path, err)
	}
	if len(doc.Rules) == 0 {
		return nil, "", fmt.Errorf("policy file %s has no rules", path)
	}

	rules := make([]Rule, 0, len(doc.Rules))
	for i, rec := range doc.Rules {
		rule, err := rec.toRule()
		if err != nil {
			return nil, "", fmt.Errorf("policy file %s rule %d: %w", path, i, err)
		}
		rules = append(rules, rule)
	}
	return rules, doc.Default, nil
}

func (r ruleRecord) toRule() (Rule, error) {
	accessName := r.Access
	if accessName == "" && len(r.Roles) > 0 {
		accessName = string(AccessRoles)
	}
	access, err := ParseAccess(accessName)
	if err != nil {
		return Rule{}, err
	}

	rule := Rule{Pattern: r.Pattern, Methods: r.Methods, Access: access}
	if access != AccessRoles {
		if len(r.Roles) > 0 {
			return Rule{}, fmt.Errorf("roles given with access %q", access)
		}
		return rule, nil
	}

	if len(r.Roles) == 0 {
		rule.Roles = domain.Roles()
		return rule, nil
	}
	for _, name := range r.Roles {
		role, err := domain.ParseRole(name)
		if err != nil {
			return Rule{}, err
		}
		rule.Roles = append(rule.Roles, role)
	}
	return rule, nil
}
