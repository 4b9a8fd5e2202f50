package vanilla

import "strings"

func controlID(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return "edit-" + strings.ReplaceAll(trimmed, "_", "-")
}

func labelID(name string) string {
	id := controlID(name)
	if id == "" {
		return ""
	}
	return id + "-label"
}

func optionID(name, value string) string {
	return controlID(name) + "-" + strings.ReplaceAll(strings.TrimSpace(value), "_", "-")
}

func joinURL(base, segment string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" || segment == "" {
		return ""
	}
	return base + "/" + segment
}
