package memory

import "fmt"

// Шаблоны ключей в семантике Redis KEYS/SCAN MATCH: '*' и '?' совпадают с любым байтом,
// включая '/', '[...]' и '[^...]' с диапазонами, '\' экранирует следующий символ.
// Сопоставление побайтовое, как в Redis.

type globKind uint8

const (
	globLiteral globKind = iota
	globAnyOne
	globAnyMany
	globClass
)

type byteRange struct{ lo, hi byte }

type globToken struct {
	kind   globKind
	lit    byte
	negate bool
	ranges []byteRange
}

type globPattern []globToken

// compileGlob — разбор шаблона. Незакрытая '[' считается ошибкой: в Redis она молча
// сравнивается иначе, и такой шаблон почти всегда опечатка оператора.
func compileGlob(pattern string) (globPattern, error) {
	var out globPattern
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			if n := len(out); n > 0 && out[n-1].kind == globAnyMany {
				continue
			}
			out = append(out, globToken{kind: globAnyMany})
		case '?':
			out = append(out, globToken{kind: globAnyOne})
		case '\\':
			if i+1 < len(pattern) {
				i++
			}
			out = append(out, globToken{kind: globLiteral, lit: pattern[i]})
		case '[':
			tok, next, err := compileClass(pattern, i+1)
			if err != nil {
				return nil, err
			}
			out = append(out, tok)
			i = next
		default:
			out = append(out, globToken{kind: globLiteral, lit: c})
		}
	}
	return out, nil
}

// compileClass — содержимое '[...]' начиная с позиции start; возвращает индекс закрывающей ']'.
func compileClass(pattern string, start int) (globToken, int, error) {
	tok := globToken{kind: globClass}
	i := start
	if i < len(pattern) && pattern[i] == '^' {
		tok.negate = true
		i++
	}
	for ; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == ']':
			return tok, i, nil
		case c == '\\' && i+1 < len(pattern):
			i++
			tok.ranges = append(tok.ranges, byteRange{pattern[i], pattern[i]})
		case i+2 < len(pattern) && pattern[i+1] == '-' && pattern[i+2] != ']':
			lo, hi := c, pattern[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			tok.ranges = append(tok.ranges, byteRange{lo, hi})
			i += 2
		default:
			tok.ranges = append(tok.ranges, byteRange{c, c})
		}
	}
	return globToken{}, 0, fmt.Errorf("unterminated '[' in %q", pattern)
}

func (t globToken) matchByte(b byte) bool {
	switch t.kind {
	case globLiteral:
		return t.lit == b
	case globAnyOne:
		return true
	case globClass:
		in := false
		for _, r := range t.ranges {
			if b >= r.lo && b <= r.hi {
				in = true
				break
			}
		}
		return in != t.negate
	}
	return false
}

// Match — '*' с откатом к последней звезде: линейная память, без рекурсии.
func (p globPattern) Match(s string) bool {
	pi, si := 0, 0
	star, mark := -1, 0
	for si < len(s) {
		switch {
		case pi < len(p) && p[pi].kind == globAnyMany:
			star, mark = pi, si
			pi++
		case pi < len(p) && p[pi].matchByte(s[si]):
			pi++
			si++
		case star >= 0:
			mark++
			si = mark
			pi = star + 1
		default:
			return false
		}
	}
	for pi < len(p) && p[pi].kind == globAnyMany {
		pi++
	}
	return pi == len(p)
}
