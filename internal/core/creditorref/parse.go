package creditorref

import "strings"

const (
	// Prefix is the fixed ISO 11649 identifier.
	Prefix = "RF"

	// PlaceholderCheckDigits stands in for the check digits while they are
	// being computed.
	PlaceholderCheckDigits CheckDigits = "00"

	MaxBodyLength      = 21
	MinReferenceLength = len(Prefix) + 2 + 1
	MaxReferenceLength = len(Prefix) + 2 + MaxBodyLength
)

// Body is a validated reference body: 1..21 characters of [0-9A-Z].
// Leading zeros are significant characters.
type Body string

// CheckDigits is exactly two ASCII digits.
type CheckDigits string

// NumeralExpansion is a string of decimal digits produced by Expand.
type NumeralExpansion string

// Parser normalizes raw input before validation.
//
// By default an ASCII space is a display separator ("RF18 5390 0754 7034")
// and is dropped. Other whitespace is always an invalid character. With
// RejectSpaces set, spaces are invalid characters too.
//
// The zero value is ready to use.
type Parser struct {
	RejectSpaces bool
}

// normalize uppercases ASCII letters and drops separators. pos[i] is the
// index in input of out[i].
func (p Parser) normalize(input string) (out []byte, pos []int) {
	out = make([]byte, 0, len(input))
	pos = make([]int, 0, len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if c == ' ' && !p.RejectSpaces {
			continue
		}
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
		pos = append(pos, i)
	}
	return out, pos
}

// ParseBody validates a bare body for generation.
func (p Parser) ParseBody(input string) (Body, error) {
	norm, pos := p.normalize(input)
	return parseBody(input, norm, pos)
}

// ParseReference splits a full reference into its check digits and body.
// It checks structure only; use Verify for the checksum.
func (p Parser) ParseReference(input string) (CheckDigits, Body, error) {
	norm, pos := p.normalize(input)

	if len(norm) < len(Prefix) || string(norm[:len(Prefix)]) != Prefix {
		return "", "", newError(KindMissingPrefix, input)
	}
	if len(norm) < len(Prefix)+2 {
		return "", "", newError(KindInvalidLength, input)
	}
	if !isDigit(norm[2]) || !isDigit(norm[3]) {
		return "", "", newError(KindInvalidCheckDigits, input)
	}

	body, err := parseBody(input, norm[4:], pos[4:])
	if err != nil {
		return "", "", err
	}
	return CheckDigits(norm[2:4]), body, nil
}

// Parse is ParseReference returning a Reference value.
func (p Parser) Parse(input string) (Reference, error) {
	check, body, err := p.ParseReference(input)
	if err != nil {
		return Reference{}, err
	}
	return Reference{Check: check, Body: body}, nil
}

func parseBody(input string, norm []byte, pos []int) (Body, error) {
	for i, c := range norm {
		if !isDigit(c) && !isUpper(c) {
			return "", newCharError(input, pos[i])
		}
	}
	if len(norm) == 0 || len(norm) > MaxBodyLength {
		return "", newError(KindInvalidLength, input)
	}
	return Body(norm), nil
}

// Expand lays out body || "RF" || check and replaces every letter with its
// two-digit value (A=10 .. Z=35). Digits are copied unchanged.
//
// body and check must already be valid; Expand does not check them.
func Expand(body Body, check CheckDigits) NumeralExpansion {
	var b strings.Builder
	b.Grow(2 * (len(body) + len(Prefix) + len(check)))
	for _, part := range [...]string{string(body), Prefix, string(check)} {
		for i := 0; i < len(part); i++ {
			c := part[i]
			if isDigit(c) {
				b.WriteByte(c)
				continue
			}
			v := c - 'A' + 10
			b.WriteByte('0' + v/10)
			b.WriteByte('0' + v%10)
		}
	}
	return NumeralExpansion(b.String())
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }
func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }
