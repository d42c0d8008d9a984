// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

// validMod112 checks the ISO 7064 MOD 11-2 check character used by ORCID
// and ISNI. s holds 16 characters without separators.
func validMod112(s string) bool {
	if len(s) != 16 {
		return false
	}
	total := 0
	for _, c := range s[:15] {
		if c < '0' || c > '9' {
			return false
		}
		total = (total + int(c-'0')) * 2
	}
	result := (12 - total%11) % 11
	want := byte('0' + result)
	if result == 10 {
		want = 'X'
	}
	return s[15] == want
}

func validISBN(s string) bool {
	switch len(s) {
	case 10:
		sum := 0
		for i := 0; i < 10; i++ {
			c := s[i]
			var d int
			switch {
			case c >= '0' && c <= '9':
				d = int(c - '0')
			case c == 'X' && i == 9:
				d = 10
			default:
				return false
			}
			sum += (10 - i) * d
		}
		return sum%11 == 0
	case 13:
		if s[:3] != "978" && s[:3] != "979" {
			return false
		}
		sum := 0
		for i := 0; i < 13; i++ {
			c := s[i]
			if c < '0' || c > '9' {
				return false
			}
			w := 1
			if i%2 == 1 {
				w = 3
			}
			sum += w * int(c-'0')
		}
		return sum%10 == 0
	}
	return false
}

// validISSN checks an ISSN in the form NNNN-NNNC.
func validISSN(s string) bool {
	digits := s[:4] + s[5:]
	sum := 0
	for i := 0; i < 7; i++ {
		sum += (8 - i) * int(digits[i]-'0')
	}
	check := (11 - sum%11) % 11
	last := digits[7]
	if check == 10 {
		return last == 'X'
	}
	return int(last-'0') == check
}
