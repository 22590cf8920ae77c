package creditorref

import "strings"

// Reference is a structurally valid creditor reference.
type Reference struct {
	Check CheckDigits
	Body  Body
}

// String returns the electronic form: "RF", check digits and body, uppercase,
// without separators.
func (r Reference) String() string {
	return Prefix + string(r.Check) + string(r.Body)
}

// Print returns the paper form, grouped in blocks of four
// ("RF18 5390 0754 7034"). It is for display only.
func (r Reference) Print() string {
	s := r.String()
	var b strings.Builder
	b.Grow(len(s) + len(s)/4)
	for i := 0; i < len(s); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i:min(i+4, len(s))])
	}
	return b.String()
}

// Valid reports whether the check digits match the body.
func (r Reference) Valid() bool {
	return Verify(r.Check, r.Body)
}

// MarshalText implements encoding.TextMarshaler using the electronic form.
func (r Reference) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The checksum must hold.
func (r *Reference) UnmarshalText(text []byte) error {
	ref, err := Check(string(text))
	if err != nil {
		return err
	}
	*r = ref
	return nil
}

// New builds the reference for a raw body. The body is taken as is: a body
// that starts with "RF" keeps those characters. Use NewFromTemplate for
// input that already carries the prefix.
func (p Parser) New(body string) (Reference, error) {
	b, err := p.ParseBody(body)
	if err != nil {
		return Reference{}, err
	}
	ref := Reference{Check: ComputeCheckDigits(b), Body: b}
	if !ref.Valid() {
		return Reference{}, newError(KindInternal, body)
	}
	return ref, nil
}

// Generate returns the electronic form of the reference for a raw body.
func (p Parser) Generate(body string) (string, error) {
	ref, err := p.New(body)
	if err != nil {
		return "", err
	}
	return ref.String(), nil
}

// NewFromTemplate builds a reference from a template such as "RF00ABC" or
// "RF99 5390 0754 7034": when the input parses as a full reference, its check
// digits are recomputed from the body. Anything else is treated as a raw body.
func (p Parser) NewFromTemplate(input string) (Reference, error) {
	if tmpl, err := p.Parse(input); err == nil {
		return p.New(string(tmpl.Body))
	}
	return p.New(input)
}

// Check parses a full reference and verifies its checksum. A well-formed
// reference with wrong check digits fails with ErrChecksumMismatch; every
// other error means the input is malformed.
func (p Parser) Check(input string) (Reference, error) {
	ref, err := p.Parse(input)
	if err != nil {
		return Reference{}, err
	}
	if !ref.Valid() {
		return Reference{}, newError(KindChecksumMismatch, input)
	}
	return ref, nil
}

// Validate reports whether a well-formed reference has correct check digits.
// Malformed input is an error, not false.
func (p Parser) Validate(input string) (bool, error) {
	_, err := p.Check(input)
	switch {
	case err == nil:
		return true, nil
	case IsKind(err, KindChecksumMismatch):
		return false, nil
	default:
		return false, err
	}
}

// ParseBody validates a raw body using the default separator policy.
func ParseBody(input string) (Body, error) { return Parser{}.ParseBody(input) }

// ParseReference splits a full reference using the default separator policy.
func ParseReference(input string) (CheckDigits, Body, error) {
	return Parser{}.ParseReference(input)
}

// Parse parses a full reference without checking its checksum.
func Parse(input string) (Reference, error) { return Parser{}.Parse(input) }

// New builds the reference for a raw body.
func New(body string) (Reference, error) { return Parser{}.New(body) }

// NewFromTemplate recomputes the check digits of a template such as "RF00ABC".
func NewFromTemplate(input string) (Reference, error) { return Parser{}.NewFromTemplate(input) }

// MustNew is like New but panics on error. Intended for constants and tests.
func MustNew(body string) Reference {
	ref, err := New(body)
	if err != nil {
		panic(err)
	}
	return ref
}

// Generate returns "RF" + check digits + body for a raw body.
func Generate(body string) (string, error) { return Parser{}.Generate(body) }

// Check parses and verifies a full reference.
func Check(input string) (Reference, error) { return Parser{}.Check(input) }

// Validate reports whether input is a valid reference; malformed input is an error.
func Validate(input string) (bool, error) { return Parser{}.Validate(input) }

// IsValid reports whether input is a well-formed reference with correct check digits.
func IsValid(input string) bool {
	ok, err := Validate(input)
	return ok && err == nil
}
