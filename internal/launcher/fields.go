package launcher

import "strings"

// splitFields splits on whitespace, keeping double-quoted segments together.
func splitFields(s string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t' || r == '\n'):
			if started {
				fields = append(fields, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		fields = append(fields, current.String())
	}
	return fields
}
