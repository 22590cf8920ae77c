// Package creditorref generates and validates ISO 11649 Structured Creditor
// References.
//
// A creditor reference is "RF", two check digits and a body of 1 to 21
// characters from [0-9A-Z]. A vendor prints it on an invoice instead of the
// invoice number; the payer copies it into the remittance information and the
// vendor matches the incoming payment back to its receivables.
//
// The check digits are chosen so that the rearranged reference
// (body, then "RF", then the check digits), with every letter replaced by its
// two-digit value A=10 .. Z=35, is congruent to 1 modulo 97. The expanded
// number can be ~50 digits long, so it is reduced one digit at a time and
// never held as an integer.
//
// Everything in this package is pure and safe for concurrent use.
//
//	ref, err := creditorref.Generate("539007547034") // "RF18539007547034"
//	ok, err := creditorref.Validate("RF18 5390 0754 7034") // true, nil
package creditorref
