package hawalacrypto

import "unicode"

// Strength classifies a candidate backup password. The classification
// is advisory: encoding never rejects a weak password, the caller
// decides whether to warn or block.
type Strength int

// Strength levels, weakest first.
const (
	StrengthWeak Strength = iota
	StrengthFair
	StrengthGood
	StrengthStrong
)

// String returns the lowercase name of the strength level.
func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "weak"
	case StrengthFair:
		return "fair"
	case StrengthGood:
		return "good"
	case StrengthStrong:
		return "strong"
	default:
		return "weak"
	}
}

// Thresholds for the strength classification.
const (
	minFairLength   = 8
	minStrongLength = 16
	minGoodClasses  = 3
)

// EvaluatePasswordStrength classifies a password by length and by how
// many character categories it draws from (lowercase, uppercase, digit,
// symbol). Pure and total; repeated characters count their category
// only once.
func EvaluatePasswordStrength(password string) Strength {
	runes := []rune(password)
	if len(runes) < minFairLength {
		return StrengthWeak
	}

	var lower, upper, digit, symbol bool
	for _, r := range runes {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, present := range []bool{lower, upper, digit, symbol} {
		if present {
			classes++
		}
	}

	if classes < minGoodClasses {
		return StrengthFair
	}
	if len(runes) < minStrongLength {
		return StrengthGood
	}
	return StrengthStrong
}
