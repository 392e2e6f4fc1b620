package domain

// Rule is one compliance requirement as displayed. It has no structure
// beyond its text; list order is display order.
type Rule string

// DefaultRules is the rule set shown before any successful extraction.
func DefaultRules() []Rule {
	return []Rule{
		"Rule 1: All transactions above $10,000 must be reported.",
		"Rule 2: User authentication is required before processing payments.",
		"Rule 3: Transactions can only be performed within banking hours.",
		"Rule 4: A risk assessment is mandatory for international transfers.",
	}
}

// RulesFromStrings converts remote rule strings without inspecting them.
func RulesFromStrings(ss []string) []Rule {
	rules := make([]Rule, len(ss))
	for i, s := range ss {
		rules[i] = Rule(s)
	}
	return rules
}

// RuleSet is the persisted form of the last successfully extracted rules.
type RuleSet struct {
	Source      string `json:"source"`
	ExtractedAt string `json:"extracted_at"`
	Rules       []Rule `json:"rules"`
}
