package domain

// CoalesceStr returns the first of vals that is not empty.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
