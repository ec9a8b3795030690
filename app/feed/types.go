package feed

// Row is one order line parsed from the external CSV feed. It only lives
// long enough to become a page creation request.
type Row struct {
	Name     string
	Quantity int
	Price    int
}
