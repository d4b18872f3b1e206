package jetdb

// ByteOffset returns the file offset of the start of page, given the
// database's page size. PageReader implementations in pkg/jetsource use
// this rather than repeating the multiplication themselves.
func ByteOffset(page int64, pageSize int) int64 {
	return page * int64(pageSize)
}
