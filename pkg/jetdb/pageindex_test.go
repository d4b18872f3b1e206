package jetdb

import "testing"

func TestByteOffset(t *testing.T) {
	cases := []struct {
		page     int64
		pageSize int
		want     int64
	}{
		{0, 4096, 0},
		{1, 4096, 4096},
		{3, 2048, 6144},
	}

	for _, c := range cases {
		if got := ByteOffset(c.page, c.pageSize); got != c.want {
			t.Errorf("ByteOffset(%d, %d) = %d, want %d", c.page, c.pageSize, got, c.want)
		}
	}
}
