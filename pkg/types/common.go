package types

const NO_PAGINATION = 0

// Paginate converts a page/pagesize pair into limit/offset arguments.
// Page numbering starts at 1; NO_PAGINATION disables the limit entirely.
func Paginate(page, pageSize uint64) (limit, offset uint64) {
	if page == NO_PAGINATION || pageSize == NO_PAGINATION {
		return 0, 0
	}
	return pageSize, (page - 1) * pageSize
}
