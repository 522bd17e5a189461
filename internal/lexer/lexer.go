package lexer

import "unicode/utf8"

// Lex converts source into a flat token stream. The stream always ends with
// exactly one EOF token; characters the language does not know become
// ILLEGAL tokens instead of stopping the scan.
func Lex(src string) []Token {
	var out []Token
	i := 0
	n := len(src)

	peek := func(off int) byte {
		j := i + off
		if j >= n || j < 0 {
			return 0
		}
		return src[j]
	}

	emit := func(typ TokenType, lit string) { out = append(out, Token{Type: typ, Lit: lit}) }

	for i < n {
		ch := src[i]

		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}

		// Strings: double-quoted, no escapes; an unterminated string runs to EOF.
		if ch == '"' {
			start := i + 1
			i++
			for i < n && src[i] != '"' {
				i++
			}
			emit(STRING, src[start:i])
			if i < n {
				i++
			}
			continue
		}

		if isDigit(ch) {
			start := i
			for i < n && isDigit(src[i]) {
				i++
			}
			emit(INT, src[start:i])
			continue
		}

		if isIdentStart(ch) {
			start := i
			i++
			for i < n && isIdentPart(src[i]) {
				i++
			}
			word := src[start:i]
			emit(LookupIdent(word), word)
			continue
		}

		two := func(a, b byte, typ TokenType) bool {
			if ch == a && peek(1) == b {
				emit(typ, src[i:i+2])
				i += 2
				return true
			}
			return false
		}
		if two('=', '=', EQ) || two('!', '=', NOT_EQ) {
			continue
		}

		switch ch {
		case '=', '+', '-', '!', '*', '/', '<', '>', ',', ';', ':', '(', ')', '{', '}', '[', ']':
			emit(TokenType(string(ch)), string(ch))
			i++
			continue
		}

		// Keep multi-byte characters whole so the diagnostic shows the real rune.
		r, size := utf8.DecodeRuneInString(src[i:])
		emit(ILLEGAL, string(r))
		i += size
	}

	emit(EOF, "")
	return out
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}
