package encode

import (
	"unicode"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// Quote renders v as a double-quoted JSON string.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) {
				d = append(d, '\\', 'u',
					hexDigits[(r>>12)&0xf],
					hexDigits[(r>>8)&0xf],
					hexDigits[(r>>4)&0xf],
					hexDigits[r&0xf])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	return string(append(d, '"'))
}
