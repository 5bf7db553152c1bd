package gpterm

// IncompleteBrackets reports whether line opens more brackets than it
// closes, meaning the user is still composing multi-line input.
//
// Only one bracket kind is tracked per line: the first '{' or '(' seen.
// Further openers of that kind nest, matching closers pop, and every other
// character is ignored. This keeps prose with stray parentheses inside a
// code block from blocking submission.
func IncompleteBrackets(line string) bool {
	var open rune
	depth := 0
	for _, c := range line {
		if open == 0 {
			if c == '{' || c == '(' {
				open = c
				depth++
			}
			continue
		}
		switch {
		case c == open:
			depth++
		case c == closer(open):
			// An unmatched closer on an empty stack is ignored.
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}

func closer(open rune) rune {
	if open == '{' {
		return '}'
	}
	return ')'
}
