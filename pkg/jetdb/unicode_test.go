package jetdb

import "testing"

func TestDecodeUTF16LE(t *testing.T) {
	// "Hi" as plain UTF-16LE.
	buf := []byte{'H', 0x00, 'i', 0x00}

	if got := decodeUTF16LE(buf); got != "Hi" {
		t.Fatalf("decodeUTF16LE = %q, want %q", got, "Hi")
	}
}

func TestDecompressUCS2(t *testing.T) {
	t.Run("all compressed", func(t *testing.T) {
		// Starts compressed (no leading toggle byte): each source byte
		// expands to a low byte plus a zero high byte.
		src := []byte{'A', 'B', 'C'}

		got := decompressUCS2(src)
		want := []byte{'A', 0x00, 'B', 0x00, 'C', 0x00}

		if string(got) != string(want) {
			t.Fatalf("decompressUCS2 = %v, want %v", got, want)
		}
	})

	t.Run("toggle to uncompressed", func(t *testing.T) {
		// 'A' compressed, then a 0x00 toggle, then two raw UTF-16LE bytes
		// for a single uncompressed unit (0x1234).
		src := []byte{'A', 0x00, 0x34, 0x12}

		got := decompressUCS2(src)
		want := []byte{'A', 0x00, 0x34, 0x12}

		if string(got) != string(want) {
			t.Fatalf("decompressUCS2 = %v, want %v", got, want)
		}
	})
}

func TestDecodeJET4Text(t *testing.T) {
	t.Run("plain UTF-16LE", func(t *testing.T) {
		raw := []byte{'O', 0x00, 'K', 0x00}
		if got := decodeJET4Text(raw); got != "OK" {
			t.Fatalf("decodeJET4Text = %q, want %q", got, "OK")
		}
	})

	t.Run("compressed with marker", func(t *testing.T) {
		raw := append([]byte{0xFF, 0xFE}, []byte("hi")...)
		if got := decodeJET4Text(raw); got != "hi" {
			t.Fatalf("decodeJET4Text = %q, want %q", got, "hi")
		}
	})
}
