package format

import "strings"

// keyword formats a keyword according to the formatter options
func (f *Formatter) keyword(kw string) string {
	if f.options.UppercaseKeywords {
		return strings.ToUpper(kw)
	}
	return strings.ToLower(kw)
}

// indent returns the specified number of indent levels as spaces
func (f *Formatter) indent(level int) string {
	return strings.Repeat(" ", level*f.options.IndentSize)
}

// sep is the separator placed between clauses
func (f *Formatter) sep() string {
	if f.options.Multiline {
		return "\n"
	}
	return " "
}

// clause formats `head item, item...`. In multi-line mode a clause with more
// than one item puts each item on its own indented line.
func (f *Formatter) clause(head string, items []string) string {
	if f.options.Multiline && len(items) > 1 {
		prefix := f.indent(1)
		return head + "\n" + prefix + strings.Join(items, ",\n"+prefix)
	}
	return head + " " + strings.Join(items, ", ")
}

// joinClauses joins non-empty clauses with the clause separator
func (f *Formatter) joinClauses(clauses ...string) string {
	parts := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, f.sep())
}
