package scim

import "strings"

const filterPrefix = `userName eq `

// ParseFilter extracts the attribute/value pair from a SCIM filter
// expression of the form `userName eq "<value>"`. This is the only filter
// construct the endpoint supports; no other operators, escaping, or
// attribute paths.
//
// Quote stripping is intentionally quirky and pinned by tests: a leading
// quote drops the first and last character, and a remaining trailing quote
// drops the last two. Well-formed input (`"alice"`) parses cleanly to
// `alice`; one-sided quotes lose a trailing character. Unsupported syntax is
// not rejected — it produces a value that matches no stored record.
func ParseFilter(expr string) (attribute, value string) {
	value = strings.Replace(expr, filterPrefix, "", 1)
	if strings.HasPrefix(value, `"`) {
		if len(value) >= 2 {
			value = value[1 : len(value)-1]
		} else {
			value = ""
		}
	}
	if strings.HasSuffix(value, `"`) {
		if len(value) >= 2 {
			value = value[:len(value)-2]
		} else {
			value = ""
		}
	}
	return "userName", value
}
