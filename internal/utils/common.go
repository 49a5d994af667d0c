// Package utils holds small string helpers shared by the CLI and the task
// file validator.
package utils

import (
	"strconv"
	"strings"
)

// SplitAndTrim splits s on sep, trims each part and drops empty ones.
func SplitAndTrim(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// JSONPointerToPath renders a JSON Pointer (RFC 6901) such as
// "#/tasks/0/title" as "tasks[0].title".
func JSONPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch {
		case token == "":
		case isIndex(token):
			b.WriteString("[" + token + "]")
		default:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(token)
		}
	}
	return b.String()
}

func isIndex(token string) bool {
	_, err := strconv.Atoi(token)
	return err == nil
}
