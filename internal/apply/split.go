package apply

import "strings"

// SplitStatements splits a multi-statement SQL script on semicolons.
// A state machine tracks single-quoted and dollar-quoted strings so
// embedded semicolons do not split statements. Returned statements are
// trimmed and exclude the terminating semicolon.
func SplitStatements(script string) []string {
	if script == "" {
		return nil
	}

	var statements []string
	var current strings.Builder
	inSingleQuote := false
	inDollarQuote := false
	dollarTag := ""

	for i := 0; i < len(script); i++ {
		ch := script[i]

		if inDollarQuote {
			current.WriteByte(ch)
			if ch == '$' && i+len(dollarTag)-1 < len(script) && script[i:i+len(dollarTag)] == dollarTag {
				current.WriteString(dollarTag[1:])
				i += len(dollarTag) - 1
				inDollarQuote = false
				dollarTag = ""
			}
			continue
		}

		if inSingleQuote {
			current.WriteByte(ch)
			if ch == '\'' {
				// Escaped quote ('') stays inside the string.
				if i+1 < len(script) && script[i+1] == '\'' {
					current.WriteByte(script[i+1])
					i++
				} else {
					inSingleQuote = false
				}
			}
			continue
		}

		switch ch {
		case '\'':
			inSingleQuote = true
			current.WriteByte(ch)
		case '$':
			// A dollar-quote opener is $tag$ or $$ with an
			// alphanumeric/underscore tag.
			end := strings.Index(script[i+1:], "$")
			if end >= 0 {
				tag := script[i : i+end+2]
				validTag := true
				for _, r := range tag[1 : len(tag)-1] {
					if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
						validTag = false
						break
					}
				}
				if validTag {
					inDollarQuote = true
					dollarTag = tag
					current.WriteString(tag)
					i += len(tag) - 1
				} else {
					current.WriteByte(ch)
				}
			} else {
				current.WriteByte(ch)
			}
		case ';':
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}

	stmt := strings.TrimSpace(current.String())
	if stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}
