package main

import "fmt"

// Temperature is a fixed-point temperature: the real value times 10, so
// "-3.2" is -32 and "45.0" is 450. Keeping tenths in an integer avoids
// floating-point parsing on the hot path entirely.
type Temperature int32

// parseTemp decodes a temperature of the form -?D{1,2}.D starting at data[i]
// and returns the index just past the last digit. The input is assumed
// well-formed; there are only four shapes to recognize: x.x, xx.x, -x.x and
// -xx.x. Malformed input yields garbage, not an error; use parseTempChecked
// when that is not acceptable.
func parseTemp(data []byte, i int) (Temperature, int) {
	if b := data[i]; b == '-' {
		if data[i+2] == '.' {
			// -x.x
			return -Temperature(10*int32(data[i+1]&0xf) + int32(data[i+3]&0xf)), i + 4
		}
		// -xx.x
		return -Temperature(100*int32(data[i+1]&0xf) + 10*int32(data[i+2]&0xf) + int32(data[i+4]&0xf)), i + 5
	} else if data[i+1] == '.' {
		// x.x
		return Temperature(10*int32(b&0xf) + int32(data[i+2]&0xf)), i + 3
	}
	// xx.x
	return Temperature(100*int32(data[i]&0xf) + 10*int32(data[i+1]&0xf) + int32(data[i+3]&0xf)), i + 4
}

// parseTempChecked decodes the full value slice of a record, verifying the
// -?D{1,2}.D shape. It reports errInvalidRecord for anything else: wrong
// digit count, missing decimal point, or a stray byte.
func parseTempChecked(value []byte) (Temperature, error) {
	s := value
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var whole int32
	switch len(s) {
	case 3: // D.D
		if !isDigit(s[0]) {
			return 0, fmt.Errorf("%w: bad temperature %q", errInvalidRecord, value)
		}
		whole = int32(s[0] & 0xf)
	case 4: // DD.D
		if !isDigit(s[0]) || !isDigit(s[1]) {
			return 0, fmt.Errorf("%w: bad temperature %q", errInvalidRecord, value)
		}
		whole = 10*int32(s[0]&0xf) + int32(s[1]&0xf)
	default:
		return 0, fmt.Errorf("%w: bad temperature %q", errInvalidRecord, value)
	}
	if s[len(s)-2] != '.' || !isDigit(s[len(s)-1]) {
		return 0, fmt.Errorf("%w: bad temperature %q", errInvalidRecord, value)
	}

	t := Temperature(10*whole + int32(s[len(s)-1]&0xf))
	if neg {
		t = -t
	}
	return t, nil
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// appendTemp renders a fixed-point temperature as signed decimal with
// exactly one fractional digit, e.g. 450 -> "45.0" and -32 -> "-3.2".
func appendTemp(dst []byte, t Temperature) []byte {
	if t < 0 {
		dst = append(dst, '-')
		t = -t
	}
	if t >= 100 {
		dst = append(dst, byte('0'+t/100))
	}
	return append(dst, byte('0'+(t/10)%10), '.', byte('0'+t%10))
}
