package domain

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// CoalesceStatus returns s when it is valid, otherwise fallback.
func CoalesceStatus(s, fallback PlanStatus) PlanStatus {
	if s.IsValid() {
		return s
	}
	return fallback
}
