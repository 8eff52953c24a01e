// Package document validates and formats Brazilian identifiers (CNPJ tax
// numbers and phone numbers). All functions are pure and total: malformed
// input yields false from validators and an unchanged (or best-effort
// partially masked) string from formatters. No errors are ever returned.
package document

import "strings"

// Valid Brazilian area codes (DDD) per the Anatel numbering plan.
var validAreaCodes = map[string]struct{}{
	"11": {}, "12": {}, "13": {}, "14": {}, "15": {}, "16": {}, "17": {}, "18": {}, "19": {},
	"21": {}, "22": {}, "24": {}, "27": {}, "28": {},
	"31": {}, "32": {}, "33": {}, "34": {}, "35": {}, "37": {}, "38": {},
	"41": {}, "42": {}, "43": {}, "44": {}, "45": {}, "46": {}, "47": {}, "48": {}, "49": {},
	"51": {}, "53": {}, "54": {}, "55": {},
	"61": {}, "62": {}, "63": {}, "64": {}, "65": {}, "66": {}, "67": {}, "68": {}, "69": {},
	"71": {}, "73": {}, "74": {}, "75": {}, "77": {}, "79": {},
	"81": {}, "82": {}, "83": {}, "84": {}, "85": {}, "86": {}, "87": {}, "88": {}, "89": {},
	"91": {}, "92": {}, "93": {}, "94": {}, "95": {}, "96": {}, "97": {}, "98": {}, "99": {},
}

// digitsOf strips every non-digit character from s.
func digitsOf(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// allSame reports whether every byte of s equals the first one.
func allSame(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}

// cnpjCheckDigit computes the check digit over digits[0:n] with the
// official weight cycle: the weight starts at `start`, decrements each
// position and wraps from 2 back to 9.
func cnpjCheckDigit(digits string, n, start int) int {
	sum := 0
	weight := start
	for i := 0; i < n; i++ {
		sum += int(digits[i]-'0') * weight
		if weight == 2 {
			weight = 9
		} else {
			weight--
		}
	}
	if sum%11 < 2 {
		return 0
	}
	return 11 - sum%11
}

// ValidCNPJ reports whether input contains a valid CNPJ. Non-digit
// characters are ignored, so both "11.222.333/0001-81" and
// "11222333000181" are accepted. Sequences of 14 identical digits are
// rejected even though their check digits are arithmetically consistent.
func ValidCNPJ(input string) bool {
	digits := digitsOf(input)
	if len(digits) != 14 {
		return false
	}
	if allSame(digits) {
		return false
	}
	if int(digits[12]-'0') != cnpjCheckDigit(digits, 12, 5) {
		return false
	}
	return int(digits[13]-'0') == cnpjCheckDigit(digits, 13, 6)
}

// FormatCNPJ renders a 14-digit CNPJ as XX.XXX.XXX/XXXX-XX.
// Anything that does not strip down to exactly 14 digits is returned
// unchanged. Check digits are not verified here.
func FormatCNPJ(input string) string {
	digits := digitsOf(input)
	if len(digits) != 14 {
		return input
	}
	return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
}

// MaskCNPJ applies the CNPJ input mask incrementally, inserting
// separators as the digit count crosses 2, 5, 8 and 12. Digits beyond 14
// are dropped. Masking already-masked input is a no-op, so the function
// can run on every keystroke.
func MaskCNPJ(value string) string {
	digits := digitsOf(value)
	if len(digits) > 14 {
		digits = digits[:14]
	}
	switch {
	case len(digits) <= 2:
		return digits
	case len(digits) <= 5:
		return digits[0:2] + "." + digits[2:]
	case len(digits) <= 8:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:]
	case len(digits) <= 12:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:]
	default:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:]
	}
}

// ValidPhone reports whether input is a valid Brazilian phone number:
// 10 digits (landline) or 11 digits (mobile), a registered area code, and
// for mobile numbers the mandatory leading 9 after the area code.
func ValidPhone(input string) bool {
	digits := digitsOf(input)
	if len(digits) < 10 || len(digits) > 11 {
		return false
	}
	if _, ok := validAreaCodes[digits[0:2]]; !ok {
		return false
	}
	if len(digits) == 11 && digits[2] != '9' {
		return false
	}
	return true
}

// FormatPhone renders a phone number as "(XX) XXXXX-XXXX" (11 digits) or
// "(XX) XXXX-XXXX" (10 digits). Other lengths are returned unchanged.
func FormatPhone(input string) string {
	digits := digitsOf(input)
	switch len(digits) {
	case 11:
		return "(" + digits[0:2] + ") " + digits[2:7] + "-" + digits[7:11]
	case 10:
		return "(" + digits[0:2] + ") " + digits[2:6] + "-" + digits[6:10]
	default:
		return input
	}
}

// MaskPhone applies the phone input mask incrementally with breakpoints
// at 2, 6 and 10 digits. Ten- and eleven-digit numbers both fit: the
// eleventh digit widens the slot before the hyphen. Digits beyond 11 are
// dropped and re-masking formatted input is a no-op.
func MaskPhone(value string) string {
	digits := digitsOf(value)
	if len(digits) > 11 {
		digits = digits[:11]
	}
	switch {
	case len(digits) == 0:
		return digits
	case len(digits) <= 2:
		return "(" + digits
	case len(digits) <= 6:
		return "(" + digits[0:2] + ") " + digits[2:]
	case len(digits) <= 10:
		return "(" + digits[0:2] + ") " + digits[2:6] + "-" + digits[6:]
	default:
		return "(" + digits[0:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}
