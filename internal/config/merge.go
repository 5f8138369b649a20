package config

// deepMerge merges override into base key-wise and recursively. Nested
// maps are merged; any other value in override replaces the base value
// for that key. Neither input map is mutated.
func deepMerge(base, override map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(base))
	for k, v := range base {
		result[k] = v
	}

	for k, v := range override {
		baseChild, baseOK := result[k].(map[string]interface{})
		overChild, overOK := v.(map[string]interface{})
		if baseOK && overOK {
			result[k] = deepMerge(baseChild, overChild)
			continue
		}
		result[k] = v
	}
	return result
}

// setLeaf replaces a single leaf value, creating intermediate maps as
// needed. Used by the env and secret override layers so sibling keys
// are left untouched.
func setLeaf(m map[string]interface{}, value interface{}, keys ...string) {
	for _, k := range keys[:len(keys)-1] {
		child, ok := m[k].(map[string]interface{})
		if !ok {
			child = make(map[string]interface{})
			m[k] = child
		}
		m = child
	}
	m[keys[len(keys)-1]] = value
}
