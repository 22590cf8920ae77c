package creditorref

const modulus = 97

// Reduce returns n mod 97.
//
// The remainder is carried digit by digit: (a*10 + d) mod 97 equals
// ((a mod 97)*10 + d) mod 97, so the running value never exceeds 96*10+9.
func Reduce(n NumeralExpansion) uint32 {
	var r uint32
	for i := 0; i < len(n); i++ {
		r = (r*10 + uint32(n[i]-'0')) % modulus
	}
	return r
}

// ComputeCheckDigits returns the check digits for body, always "02".."98".
func ComputeCheckDigits(body Body) CheckDigits {
	r := Reduce(Expand(body, PlaceholderCheckDigits))
	return formatCheckDigits(98 - r)
}

// Verify reports whether check is the correct check value for body.
func Verify(check CheckDigits, body Body) bool {
	return Reduce(Expand(body, check)) == 1
}

func formatCheckDigits(v uint32) CheckDigits {
	return CheckDigits([]byte{'0' + byte(v/10), '0' + byte(v%10)})
}
