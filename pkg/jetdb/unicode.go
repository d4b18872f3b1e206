package jetdb

import "unicode/utf16"

// decompressUCS2 reverses JET4's compressed UCS-2 encoding. src is the
// compressed payload with the leading 0xFF 0xFE marker already
// stripped by the caller. The result is uncompressed UTF-16LE bytes,
// at most 2*len(src) of them.
func decompressUCS2(src []byte) []byte {
	dst := make([]byte, 0, 2*len(src))
	compressed := true

	for i := 0; i < len(src); {
		switch {
		case src[i] == 0x00:
			compressed = !compressed
			i++
		case compressed:
			dst = append(dst, src[i], 0x00)
			i++
		case i+1 < len(src):
			dst = append(dst, src[i], src[i+1])
			i += 2
		default:
			return dst
		}
	}

	return dst
}

// decodeUTF16LE interprets buf as UTF-16LE and returns the decoded
// string. buf must have an even length; a trailing odd byte is dropped.
func decodeUTF16LE(buf []byte) string {
	n := len(buf) / 2
	units := make([]uint16, n)

	for i := 0; i < n; i++ {
		units[i] = uint16(buf[2*i]) | uint16(buf[2*i+1])<<8
	}

	return string(utf16.Decode(units))
}

// decodeJET4Text decodes a type-10 column value under JET4 rules: a
// 0xFF 0xFE prefix marks compressed UCS-2; otherwise the bytes are
// already plain UTF-16LE.
func decodeJET4Text(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFF && raw[1] == 0xFE {
		return decodeUTF16LE(decompressUCS2(raw[2:]))
	}

	return decodeUTF16LE(raw)
}
