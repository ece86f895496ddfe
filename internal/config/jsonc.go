package config

// stripJSONC turns JSON-with-comments into plain JSON by removing line
// comments, block comments, and trailing commas, in that order. Both passes
// walk the input byte by byte and track string state, so comment markers and
// commas inside string literals are always kept as content. Newlines inside
// removed comments are preserved to keep decoder error positions meaningful.
func stripJSONC(src []byte) []byte {
	return stripTrailingCommas(stripComments(src))
}

func stripComments(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		switch {
		case src[i] == '"':
			out, i = copyString(out, src, i)
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '/':
			for i += 2; i < len(src) && src[i] != '\n'; i++ {
			}
			if i < len(src) {
				out = append(out, '\n')
			}
		case src[i] == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for ; i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/'); i++ {
				if src[i] == '\n' {
					out = append(out, '\n')
				}
			}
			i++
			out = append(out, ' ')
		default:
			out = append(out, src[i])
		}
	}
	return out
}

// stripTrailingCommas drops any comma whose next non-whitespace byte closes
// an object or array. It runs after comment removal, so only whitespace can
// sit between the comma and the closing bracket.
func stripTrailingCommas(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); i++ {
		if src[i] == '"' {
			out, i = copyString(out, src, i)
			continue
		}
		if src[i] == ',' {
			j := i + 1
			for j < len(src) && isJSONSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
		}
		out = append(out, src[i])
	}
	return out
}

// copyString copies a string literal starting at the opening quote src[i]
// into out, honoring backslash escapes. It returns the index of the closing
// quote; an unterminated literal is copied to the end of the input and left
// for the JSON decoder to reject.
func copyString(out, src []byte, i int) ([]byte, int) {
	out = append(out, src[i])
	i++
	for i < len(src) {
		out = append(out, src[i])
		switch {
		case src[i] == '\\' && i+1 < len(src):
			i++
			out = append(out, src[i])
		case src[i] == '"':
			return out, i
		}
		i++
	}
	return out, i - 1
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
