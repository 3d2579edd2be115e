package orders

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func sampleSet() []Order {
	return []Order{
		{ID: 1, Code: "PK-001", Status: StatusPending, Client: Client{CompanyName: "Acme Boxes"}, CreatedAt: time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)},
		{ID: 2, Code: "PK-002", Status: StatusDelivering, Client: Client{CompanyName: "Beta Foods"}, CreatedAt: time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)},
		{ID: 3, Code: "PK-003", Status: StatusFinished, Client: Client{CompanyName: "acme boxes"}, CreatedAt: time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)},
		{ID: 42, Code: "XX-900", Status: StatusOnHold, Client: Client{CompanyName: "Gamma Print"}, CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)},
	}
}

func collect(c *Collection) []int64 {
	var ids []int64
	for o := range c.Filtered() {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestFiltered_EmptyTermReturnsFullSetInOrder(t *testing.T) {
	c := NewCollection(sampleSet())
	require.Equal(t, []int64{1, 2, 3, 42}, collect(c))
}

func TestFiltered_CaseInsensitiveAcrossFields(t *testing.T) {
	c := NewCollection(sampleSet())

	c.SetSearchTerm("pk-00") // code
	require.Equal(t, []int64{1, 2, 3}, collect(c))

	c.SetSearchTerm("DELIVER") // status
	require.Equal(t, []int64{2}, collect(c))

	c.SetSearchTerm("42") // id as string
	require.Equal(t, []int64{42}, collect(c))

	c.SetSearchTerm("ACME") // company, both casings
	require.Equal(t, []int64{1, 3}, collect(c))

	c.SetSearchTerm("15/03/2024") // createdAt as DD/MM/YYYY
	require.Equal(t, []int64{1}, collect(c))

	c.SetSearchTerm("no-such-thing")
	require.Empty(t, collect(c))
}

func TestFiltered_IsRestartable(t *testing.T) {
	c := NewCollection(sampleSet())
	c.SetSearchTerm("pk")
	first := collect(c)
	second := collect(c)
	require.Equal(t, first, second)
}

func TestPage_Windows(t *testing.T) {
	set := make([]Order, 25)
	for i := range set {
		set[i] = Order{ID: int64(i + 1), Code: fmt.Sprintf("PK-%03d", i+1)}
	}
	c := NewCollection(set)

	require.Len(t, c.Page(), 10) // page 0, size 10
	c.SetPageIndex(2)
	last := c.Page()
	require.Len(t, last, 5)
	require.Equal(t, int64(21), last[0].ID)
	require.Equal(t, 3, c.PageCount())

	c.SetPageIndex(7) // out of range → empty window, not a panic
	require.Empty(t, c.Page())
}

func TestSetPageSize_ResetsPageIndex(t *testing.T) {
	set := make([]Order, 25)
	for i := range set {
		set[i] = Order{ID: int64(i + 1)}
	}
	c := NewCollection(set)
	c.SetPageIndex(2)
	c.SetPageSize(20)
	require.Equal(t, 0, c.PageIndex())
	require.Len(t, c.Page(), 20)
}

func TestSetSearchTerm_ResetsPageIndex(t *testing.T) {
	c := NewCollection(sampleSet())
	c.SetPageIndex(3)
	c.SetSearchTerm("pk")
	require.Equal(t, 0, c.PageIndex())
}

func TestPage_FollowsFilter(t *testing.T) {
	c := NewCollection(sampleSet())
	c.SetSearchTerm("acme")
	c.SetPageSize(1)
	require.Equal(t, int64(1), c.Page()[0].ID)
	c.SetPageIndex(1)
	require.Equal(t, int64(3), c.Page()[0].ID)
}
