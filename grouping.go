package argfmt

// appendGrouped appends digits to dst with sep inserted between digit
// groups. grouping[0] is the size of the group nearest the decimal point;
// the last entry repeats and an entry <= 0 ends grouping.
func appendGrouped(dst, digits []byte, sep string, grouping []int) []byte {
	if sep == "" || len(grouping) == 0 || grouping[0] <= 0 {
		return append(dst, digits...)
	}

	// Cut points are collected right to left.
	var cutBuf [72]int
	cuts := cutBuf[:0]
	pos := len(digits)
	gi := 0
	for size := grouping[0]; size > 0 && pos > size; {
		pos -= size
		cuts = append(cuts, pos)
		if gi < len(grouping)-1 {
			gi++
			size = grouping[gi]
		}
	}

	prev := 0
	for i := len(cuts) - 1; i >= 0; i-- {
		dst = append(dst, digits[prev:cuts[i]]...)
		dst = append(dst, sep...)
		prev = cuts[i]
	}
	return append(dst, digits[prev:]...)
}

// appendLocalized appends num to dst, grouping the integer digits that
// follow the first prefixLen bytes and replacing the decimal point.
func (l *Locale) appendLocalized(dst, num []byte, prefixLen int, isFloat bool) []byte {
	dst = append(dst, num[:prefixLen]...)
	rest := num[prefixLen:]
	end := len(rest)
	if isFloat {
		end = 0
		for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
			end++
		}
	}
	dst = appendGrouped(dst, rest[:end], l.ThousandsSep, l.Grouping)
	for _, c := range rest[end:] {
		if c == '.' {
			dst = append(dst, l.DecimalPoint...)
			continue
		}
		dst = append(dst, c)
	}
	return dst
}
