// Package strutil provides string case conversions used by the code
// generators.
package strutil

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a string to snake_case.
// Examples: userName -> user_name, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		if unicode.IsUpper(r) {
			// Underscore before an uppercase letter when the previous
			// char is lowercase, or when an acronym run ends
			// ("HTTPServer" -> "http_server").
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

// ToCamelCase converts a string to camelCase.
// Examples: user_name -> userName, UserName -> userName
func ToCamelCase(s string) string {
	if s == "" {
		return ""
	}

	pascal := ToPascalCase(s)
	if pascal == "" {
		return ""
	}

	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// ExportedGoName converts a column or table identifier into an exported
// Go identifier. A leading digit (legal in the DDL identifier run,
// illegal at the start of a Go identifier) gets an "X" prefix.
// Examples: user_name -> UserName, 2fa_code -> X2faCode
func ExportedGoName(s string) string {
	name := ToPascalCase(s)
	if name == "" {
		return ""
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "X" + name
	}
	return name
}
