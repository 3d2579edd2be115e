package orders

import (
	"iter"
	"strconv"
	"strings"
)

const DefaultPageSize = 10

// Collection holds the full fetched order set and projects a filtered,
// paginated window for the listing UI. Filtering and paging are purely
// local: the set is fetched once, no network calls from here.
type Collection struct {
	orders    []Order
	term      string
	pageIndex int
	pageSize  int
}

func NewCollection(set []Order) *Collection {
	return &Collection{orders: set, pageSize: DefaultPageSize}
}

// SetSearchTerm replaces the active filter and resets to the first page.
func (c *Collection) SetSearchTerm(term string) {
	c.term = strings.ToLower(strings.TrimSpace(term))
	c.pageIndex = 0
}

// SetPageSize changes the window size and resets the index to 0 so the
// window can never land out of range.
func (c *Collection) SetPageSize(size int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	c.pageSize = size
	c.pageIndex = 0
}

func (c *Collection) SetPageIndex(i int) {
	if i < 0 {
		i = 0
	}
	c.pageIndex = i
}

func (c *Collection) PageIndex() int { return c.pageIndex }
func (c *Collection) PageSize() int  { return c.pageSize }

// matches: substring case-insensitive terhadap code, status, id, nama
// perusahaan client, dan tanggal dibuat format DD/MM/YYYY. Cocok kalau
// SALAH SATU field mengandung term.
func (c *Collection) matches(o Order) bool {
	if c.term == "" {
		return true
	}
	fields := []string{
		strings.ToLower(o.Code),
		strings.ToLower(string(o.Status)),
		strconv.FormatInt(o.ID, 10),
		strings.ToLower(o.Client.CompanyName),
		o.CreatedAt.Format(DateLayout),
	}
	for _, f := range fields {
		if strings.Contains(f, c.term) {
			return true
		}
	}
	return false
}

// Filtered is a lazy, restartable view of the orders matching the current
// term. Original relative order is preserved; no re-sort.
func (c *Collection) Filtered() iter.Seq[Order] {
	return func(yield func(Order) bool) {
		for _, o := range c.orders {
			if !c.matches(o) {
				continue
			}
			if !yield(o) {
				return
			}
		}
	}
}

// FilteredCount counts the orders matching the current term.
func (c *Collection) FilteredCount() int {
	n := 0
	for _, o := range c.orders {
		if c.matches(o) {
			n++
		}
	}
	return n
}

// PageCount returns how many windows the filtered set spans (at least 1).
func (c *Collection) PageCount() int {
	n := c.FilteredCount()
	if n == 0 {
		return 1
	}
	return (n + c.pageSize - 1) / c.pageSize
}

// Page materializes the current window of the filtered view.
func (c *Collection) Page() []Order {
	start := c.pageIndex * c.pageSize
	out := make([]Order, 0, c.pageSize)
	i := 0
	for o := range c.Filtered() {
		if i >= start+c.pageSize {
			break
		}
		if i >= start {
			out = append(out, o)
		}
		i++
	}
	return out
}
