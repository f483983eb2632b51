package schema

import "strings"

// parseEnumType extracts the literal values from a MySQL column type such as
// "enum('pending','active')". Returns nil for any other column type.
func parseEnumType(columnType string) []string {
	lowered := strings.ToLower(strings.TrimSpace(columnType))
	if !strings.HasPrefix(lowered, "enum(") {
		return nil
	}

	open := strings.Index(columnType, "(")
	end := strings.LastIndex(columnType, ")")
	if open < 0 || end <= open {
		return nil
	}

	var values []string
	inner := columnType[open+1 : end]
	for len(inner) > 0 {
		start := strings.Index(inner, "'")
		if start < 0 {
			break
		}
		inner = inner[start+1:]

		// MySQL escapes a quote inside an enum literal by doubling it.
		var sb strings.Builder
		for {
			end := strings.Index(inner, "'")
			if end < 0 {
				return values
			}
			if end+1 < len(inner) && inner[end+1] == '\'' {
				sb.WriteString(inner[:end+1])
				inner = inner[end+2:]
				continue
			}
			sb.WriteString(inner[:end])
			inner = inner[end+1:]
			break
		}
		values = append(values, sb.String())
	}

	return values
}
