package gotags

import "strings"

// SnakeCase converts a Go identifier to the lower-case, underscore separated
// form used for json and xml tag values.
//
// Every upper-case ASCII letter after the first byte gets its own
// underscore, so acronyms are split letter by letter: "ID" becomes "i_d" and
// "HTTPServer" becomes "h_t_t_p_server". Existing tags depend on this exact
// output.
func SnakeCase(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				sb.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
