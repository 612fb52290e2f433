package internal

// PluralRuleCount is the number of known plural rules.
const PluralRuleCount = 15

// pluralFormCounts is the number of choices each rule selects between.
var pluralFormCounts = [PluralRuleCount]int{2, 1, 2, 3, 5, 3, 3, 3, 4, 2, 3, 2, 4, 4, 3}

// PluralFormCount returns how many forms rule distinguishes, or 0 for an
// unknown rule.
func PluralFormCount(rule int) int {
	if rule < 0 || rule >= PluralRuleCount {
		return 0
	}
	return pluralFormCounts[rule]
}

// PluralForm selects the plural form for count under rule. Negative counts
// use their magnitude. Unknown rules select form 0.
func PluralForm(count int64, rule int) int {
	n := uint64(count)
	if count < 0 {
		n = uint64(-count)
	}

	switch rule {
	// Two forms: singular for 1 only. English, German, Dutch, ...
	case 0:
		if n != 1 {
			return 1
		}
		return 0

	// Only one form. Hungarian, Japanese, Turkish, ...
	case 1:
		return 0

	// Two forms: singular for 0 and 1. French, Brazilian Portuguese.
	case 2:
		if n > 1 {
			return 1
		}
		return 0

	// Three forms, special case for 0 and numbers ending in 1 except 11.
	// Latvian.
	case 3:
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		if n != 0 {
			return 1
		}
		return 2

	// Five forms: 1, 2, 3 to 6, 7 to 10, other. Irish.
	case 4:
		switch {
		case n == 1:
			return 0
		case n == 2:
			return 1
		case n < 7:
			return 2
		case n < 11:
			return 3
		}
		return 4

	// Three forms, special cases for numbers ending in 1 and 2-9. Lithuanian.
	case 5:
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		if n%10 >= 2 && (n%100 < 10 || n%100 >= 20) {
			return 1
		}
		return 2

	// Three forms, special cases for numbers ending in 1 and 2-4.
	// Croatian, Russian, Ukrainian.
	case 6:
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		if n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20) {
			return 1
		}
		return 2

	// Three forms, special cases for 1 and some numbers ending in 2-4. Polish.
	case 7:
		if n == 1 {
			return 0
		}
		if n%10 >= 2 && n%10 <= 4 && (n%100 < 10 || n%100 >= 20) {
			return 1
		}
		return 2

	// Four forms, special cases for numbers ending in 01, 02, 03 and 04.
	// Slovenian.
	case 8:
		switch n % 100 {
		case 1:
			return 0
		case 2:
			return 1
		case 3, 4:
			return 2
		default:
			return 3
		}

	// Two forms: singular for numbers ending in 1 except 11. Icelandic.
	case 9:
		if n%10 == 1 && n%100 != 11 {
			return 0
		}
		return 1

	// Three forms, special cases for 1 and 2-4. Czech, Slovak.
	case 10:
		if n == 1 {
			return 0
		}
		if n >= 2 && n <= 4 {
			return 1
		}
		return 2

	// Two forms, by the final digit's sound. Korean.
	case 11:
		switch n % 10 {
		case 0, 1, 3, 6, 7, 8:
			return 0
		case 2, 4, 5, 9:
			return 1
		}
		return 0

	// Four forms: 1, 0 or ending in 02-10, ending in 11-19, other. Maltese.
	case 12:
		if n == 1 {
			return 0
		}
		if n == 0 || (n%100 > 1 && n%100 < 11) {
			return 1
		}
		if n%100 > 10 && n%100 < 20 {
			return 2
		}
		return 3

	// Four forms: 1 or 11, 2 or 12, 3-10 or 13-19, other. Scottish Gaelic.
	case 13:
		if n == 1 || n == 11 {
			return 0
		}
		if n == 2 || n == 12 {
			return 1
		}
		if (n > 2 && n < 11) || (n > 12 && n < 20) {
			return 2
		}
		return 3

	// Three forms: 1, 0 or ending in 01-19, other. Romanian.
	case 14:
		if n == 1 {
			return 0
		}
		if n == 0 || (n%100 > 0 && n%100 < 20) {
			return 1
		}
		return 2
	}

	return 0
}
