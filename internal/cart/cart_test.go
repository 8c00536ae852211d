package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/storefront/internal/catalog"
)

func product(id string, price float64, stock int) catalog.Product {
	return catalog.Product{ID: catalog.ProductID(id), Name: "item " + id, Category: "Books", Price: price, Stock: stock}
}

func TestAdd_UpsertsQuantity(t *testing.T) {
	c := New()

	require.NoError(t, c.Add(product("1", 50, 3)))
	require.NoError(t, c.Add(product("1", 50, 3)))
	require.NoError(t, c.Add(product("2", 10, 1)))

	assert.Len(t, c.Lines(), 2)
	assert.Equal(t, 3, c.Count())
	assert.Equal(t, 2, c.Quantity("1"))
	assert.Equal(t, 1, c.Quantity("2"))
	assert.InDelta(t, 110.0, c.Total(), 1e-9)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, catalog.ProductID("1"), lines[0].Product.ID)
	assert.Equal(t, catalog.ProductID("2"), lines[1].Product.ID)
}

func TestAdd_OutOfStockIsRejected(t *testing.T) {
	c := New()

	err := c.Add(product("1", 50, 0))

	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Empty(t, c.Lines())
	assert.Equal(t, 0, c.Count())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product("1", 5, 2)))

	lines := c.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, c.Quantity("1"))
}
