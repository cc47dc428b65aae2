package store

// MockRuleStore is a mock implementation of the rule store for testing.
type MockRuleStore struct {
	Rules RulesConfig

	// Error flags for testing error conditions
	LoadRulesError error
	SaveRulesError error

	Saved []RulesConfig
}

// LoadRules returns the mock rules.
func (m *MockRuleStore) LoadRules() (RulesConfig, error) {
	if m.LoadRulesError != nil {
		return RulesConfig{}, m.LoadRulesError
	}
	return m.Rules, nil
}

// SaveRules records the rules passed to it.
func (m *MockRuleStore) SaveRules(rules RulesConfig) error {
	if m.SaveRulesError != nil {
		return m.SaveRulesError
	}
	m.Saved = append(m.Saved, rules)
	m.Rules = rules
	return nil
}

// FindConfigFile is a mock implementation that returns a dummy path.
func (m *MockRuleStore) FindConfigFile(filename string) (string, error) {
	return "/mock/path/" + filename, nil
}
