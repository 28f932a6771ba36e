package reshape

import (
	"strings"
)

const upperhex = "0123456789ABCDEF"

// URLEncode percent-encodes the whitespace-trimmed name, so that it can be used in
// quoted column references. Letters, digits, '_', '.', '-', '~' and '/' are kept
// as-is; every other byte is written as %XX.
func URLEncode(raw string) string {
	s := strings.TrimSpace(raw)
	var res strings.Builder
	res.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			res.WriteByte(c)
			continue
		}
		res.WriteByte('%')
		res.WriteByte(upperhex[c>>4])
		res.WriteByte(upperhex[c&15])
	}
	return res.String()
}

// URLDecode reverses URLEncode on the whitespace-trimmed input. Malformed escapes are
// kept verbatim rather than reported.
func URLDecode(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.Contains(s, "%") {
		return s
	}
	res := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			res = append(res, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		res = append(res, s[i])
	}
	return strings.ToValidUTF8(string(res), "�")
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '_', c == '.', c == '-', c == '~', c == '/':
		return true
	}
	return false
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
