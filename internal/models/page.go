package models

// Page carries the from/size listing parameters. Pages are size-sized
// chunks: from is rounded down to a page boundary, it is not an
// arbitrary row offset. A request with from=5, size=2 selects page 2
// (rows 4-5 of the ordered set), not rows starting at 5.
type Page struct {
	From int
	Size int
}

// Valid reports whether the parameters form a usable page. Both zero is
// rejected as an ambiguous empty page; negatives are rejected; size zero
// with a positive from would divide by zero in the index computation and
// is rejected too.
func (p Page) Valid() bool {
	if p.From == 0 && p.Size == 0 {
		return false
	}
	if p.From < 0 || p.Size < 0 {
		return false
	}
	if p.Size == 0 {
		return false
	}
	return true
}

// Index is the zero-based page number: from/size floor-divided, zero
// when from is not positive.
func (p Page) Index() int {
	if p.From > 0 {
		return p.From / p.Size
	}
	return 0
}

// Offset is the row offset of the selected page.
func (p Page) Offset() int {
	return p.Index() * p.Size
}

// Limit is the page size.
func (p Page) Limit() int {
	return p.Size
}
