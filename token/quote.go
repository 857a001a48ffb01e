package token

import (
	"strings"
)

// Keywords that may not appear as the prefix of a bare value.
var reservedPrefixes = []string{"data_", "save_", "loop_", "stop_", "global_"}

// Quote renders v so that tokenizing the result yields v back as a single
// token. Values containing newlines are returned in body form: the caller
// is expected to add the ";\n...\n;" framing when splicing them onto their
// own lines. Quote(Quote(v)) double-wraps; quote values once.
func Quote(v string) (string, error) {
	if v == "" {
		return "", ErrEmptyValue
	}

	// A value that already looks like a nested semicolon-delineated block
	// is escaped by re-indenting every line three spaces, so the embedded
	// "\n;" can no longer terminate the enclosing frame.
	if strings.Contains(v, "\n;") {
		v = strings.ReplaceAll(v, "\n", "\n   ")
		if !strings.HasSuffix(v, "\n") {
			v += "\n"
		}
		if !strings.HasPrefix(v, "\n") {
			v = "\n   " + v
		}
		return v, nil
	}

	if strings.Contains(v, "\n") {
		if !strings.HasSuffix(v, "\n") {
			return v + "\n", nil
		}
		return v, nil
	}

	hasSingle := strings.Contains(v, "'")
	hasDouble := strings.Contains(v, `"`)

	if hasSingle && hasDouble {
		// A quote type cannot enclose the value if any occurrence of it is
		// followed by whitespace: the tokenizer would read that occurrence
		// as the closing delimiter.
		canSingle, canDouble := true, true
		for i := 0; i+1 < len(v); i++ {
			if !isWhitespace(v[i+1]) {
				continue
			}
			switch v[i] {
			case '\'':
				canSingle = false
			case '"':
				canDouble = false
			}
		}
		switch {
		case !canSingle && !canDouble:
			return v + "\n", nil
		case canSingle:
			return "'" + v + "'", nil
		default:
			return `"` + v + `"`, nil
		}
	}

	if needsWrapping(v) {
		if hasSingle {
			return `"` + v + `"`, nil
		}
		return "'" + v + "'", nil
	}
	return v, nil
}

func needsWrapping(v string) bool {
	switch v[0] {
	case '_', '"', '\'':
		return true
	}
	for _, kw := range reservedPrefixes {
		if strings.HasPrefix(v, kw) {
			return true
		}
	}
	for i := 0; i < len(v); i++ {
		if isWhitespace(v[i]) {
			return true
		}
		// '#' opens a comment only at the start of a token.
		if v[i] == '#' && (i == 0 || isWhitespace(v[i-1])) {
			return true
		}
	}
	return false
}
