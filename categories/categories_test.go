package categories

import (
	"testing"

	"maison/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTree(t *testing.T) {
	flat := []models.Category{
		{CategoryID: "c1", Name: "Apparel"},
		{CategoryID: "c2", Name: "Home"},
		{CategoryID: "c3", Name: "Coats", ParentID: "c1", Level: 1},
		{CategoryID: "c4", Name: "Wool Coats", ParentID: "c3", Level: 2},
	}

	tree := BuildTree(flat)
	require.Len(t, tree, 2)

	assert.Equal(t, "Apparel", tree[0].Name)
	require.Len(t, tree[0].Subs, 1)
	assert.Equal(t, "Coats", tree[0].Subs[0].Name)
	require.Len(t, tree[0].Subs[0].Subs, 1)
	assert.Equal(t, "Wool Coats", tree[0].Subs[0].Subs[0].Name)

	assert.Equal(t, "Home", tree[1].Name)
	assert.Empty(t, tree[1].Subs)
}

func TestBuildTreeEmpty(t *testing.T) {
	assert.Equal(t, []models.CategoryNode{}, BuildTree(nil))
}
