package jetdb

// cp1252HighRange maps bytes 0x80-0x9F to their cp1252 code points. In
// true latin1 these bytes are the C1 control codes 0x80-0x9F; cp1252
// reuses that range for printable characters. Index 0 corresponds to
// byte 0x80.
var cp1252HighRange = [0x20]rune{
	0x20AC, 0x0081, 0x201A, 0x0192, 0x201E, 0x2026, 0x2020, 0x2021,
	0x02C6, 0x2030, 0x0160, 0x2039, 0x0152, 0x008D, 0x017D, 0x008F,
	0x0090, 0x2018, 0x2019, 0x201C, 0x201D, 0x2022, 0x2013, 0x2014,
	0x02DC, 0x2122, 0x0161, 0x203A, 0x0153, 0x009D, 0x017E, 0x0178,
}

// decodeSingleByteText decodes a JET3 type-10 column value. spec.md §9
// flags latin1 as an explicit approximation of cp1252; the caller's
// jetconfig.Config.TextEncoding selects which one to use, defaulting to
// latin1.
func decodeSingleByteText(raw []byte, cp1252 bool) string {
	runes := make([]rune, len(raw))

	for i, b := range raw {
		if cp1252 && b >= 0x80 && b <= 0x9F {
			runes[i] = cp1252HighRange[b-0x80]
		} else {
			runes[i] = rune(b)
		}
	}

	return string(runes)
}
