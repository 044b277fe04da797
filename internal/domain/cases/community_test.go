package cases

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginationDefaults(t *testing.T) {
	assert.Equal(t, Pagination{TotalData: 0, PerPage: 6, CurrentPage: 1, TotalPages: 1}, InitialPagination())
	assert.Equal(t, Pagination{TotalData: 0, PerPage: 6, CurrentPage: 1, TotalPages: 0}, ResetPagination())
}

func TestPaginationHasNext(t *testing.T) {
	assert.True(t, Pagination{CurrentPage: 1, TotalPages: 3}.HasNext())
	assert.False(t, Pagination{CurrentPage: 3, TotalPages: 3}.HasNext())
	assert.False(t, ResetPagination().HasNext())
}

func TestPaginationDecode(t *testing.T) {
	var p Pagination
	require.NoError(t, json.Unmarshal([]byte(`{"total_data":14,"per_page":6,"current_page":2,"total_pages":3}`), &p))
	assert.Equal(t, Pagination{TotalData: 14, PerPage: 6, CurrentPage: 2, TotalPages: 3}, p)
}

func TestCommunityFilterQuery(t *testing.T) {
	t.Run("omits zero values", func(t *testing.T) {
		assert.Empty(t, CommunityFilter{}.Query())
	})

	t.Run("includes set values", func(t *testing.T) {
		q := CommunityFilter{Category: "c1", Page: 2, PerPage: 6}.Query()
		assert.Equal(t, map[string]string{"category": "c1", "page": "2", "perPage": "6"}, q)
	})
}

func TestCommunityDecodeFlattensCase(t *testing.T) {
	var c Community
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"9","title":"T","category":"c1","support":4}`), &c))
	assert.Equal(t, "9", c.ID)
	assert.Equal(t, "T", c.Title)
	assert.Equal(t, "c1", c.Category.ID)
	assert.Equal(t, 4, c.Support)
}

func TestCategoryIndex(t *testing.T) {
	idx := NewCategoryIndex([]Category{
		{ID: "c2", Name: "Pelecehan"},
		{ID: "c1", Name: "Kekerasan"},
		{ID: "c2", Name: "Pelecehan Seksual"},
	})

	assert.Equal(t, 2, idx.Len())
	assert.True(t, idx.Contains("c1"))
	assert.False(t, idx.Contains("c3"))

	c, ok := idx.Lookup("c2")
	require.True(t, ok)
	assert.Equal(t, "Pelecehan Seksual", c.Name)

	list := idx.List()
	require.Len(t, list, 2)
	assert.Equal(t, "c2", list[0].ID)
	assert.Equal(t, "c1", list[1].ID)
}

func TestEmptyCategoryIndex(t *testing.T) {
	var idx CategoryIndex
	assert.Equal(t, 0, idx.Len())
	assert.False(t, idx.Contains("c1"))
	assert.Empty(t, idx.List())
}
