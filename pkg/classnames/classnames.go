// Package classnames builds space separated style token lists.
package classnames

import "strings"

// Join returns the non-empty tokens separated by a single space, in order.
func Join(tokens ...string) string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		kept = append(kept, t)
	}
	return strings.Join(kept, " ")
}

// If picks a when cond holds, b otherwise.
func If(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
