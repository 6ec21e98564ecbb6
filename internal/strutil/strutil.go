// Package strutil provides case conversion and SQL naming helpers
// used throughout the naja codebase.
package strutil

import (
	"strings"
	"unicode"
)

// -----------------------------------------------------------------------------
// Case Conversion
// -----------------------------------------------------------------------------

// ToSnakeCase converts a string to snake_case.
// Examples: userName -> user_name, UserName -> user_name, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) {
			// Underscore before an uppercase rune when the previous rune is
			// lowercase, or the next one is ("HTTPServer" -> "http_server").
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) {
					result.WriteByte('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteByte('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		} else if r == '-' || r == ' ' {
			result.WriteByte('_')
		} else {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// ToPascalCase converts a string to PascalCase.
// Examples: user_name -> UserName, user-name -> UserName
func ToPascalCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s))

	capitalizeNext := true
	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext {
			result.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		} else {
			result.WriteRune(unicode.ToLower(r))
		}
	}

	return result.String()
}

// -----------------------------------------------------------------------------
// SQL Naming
// -----------------------------------------------------------------------------

// FKColumn returns the conventional foreign key column name for a table.
// Example: FKColumn("user") -> "user_id"
func FKColumn(table string) string {
	return table + "_id"
}

// ConstraintName returns the foreign key constraint/index name for a
// referenced table. Example: ConstraintName("customer") -> "customer_ind"
func ConstraintName(remoteTable string) string {
	return remoteTable + "_ind"
}

// PrimaryKeyName returns the named primary key constraint for a table.
// Example: PrimaryKeyName("user") -> "user_pkey"
func PrimaryKeyName(table string) string {
	return table + "_pkey"
}

// EnumTypeName returns the declared enum type name for a column.
// Example: EnumTypeName("status") -> "enum_status"
func EnumTypeName(column string) string {
	return "enum_" + column
}

// -----------------------------------------------------------------------------
// Formatting
// -----------------------------------------------------------------------------

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
