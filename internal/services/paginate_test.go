package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginateFirstPage(t *testing.T) {
	p := paginate(1, 10, 35)
	assert.Equal(t, 1, p.First)
	assert.Nil(t, p.Prev)
	require.NotNil(t, p.Next)
	assert.Equal(t, 2, *p.Next)
	assert.Equal(t, 4, p.Last)
	assert.Equal(t, 4, p.Pages)
	assert.Equal(t, int64(35), p.Items)
}

func TestPaginateMiddlePage(t *testing.T) {
	p := paginate(2, 10, 35)
	require.NotNil(t, p.Prev)
	require.NotNil(t, p.Next)
	assert.Equal(t, 1, *p.Prev)
	assert.Equal(t, 3, *p.Next)
}

func TestPaginateLastPage(t *testing.T) {
	p := paginate(4, 10, 35)
	require.NotNil(t, p.Prev)
	assert.Equal(t, 3, *p.Prev)
	assert.Nil(t, p.Next)
}

func TestPaginateEmptyResult(t *testing.T) {
	p := paginate(1, 10, 0)
	assert.Equal(t, 1, p.Pages)
	assert.Equal(t, 1, p.Last)
	assert.Nil(t, p.Prev)
	assert.Nil(t, p.Next)
	assert.Equal(t, int64(0), p.Items)
}

func TestPaginateDefaultsApplied(t *testing.T) {
	p := paginate(0, 0, 25)
	// page 0 becomes 1, limit 0 becomes 10
	assert.Equal(t, 3, p.Pages)
	assert.Nil(t, p.Prev)
	require.NotNil(t, p.Next)
	assert.Equal(t, 2, *p.Next)
}

func TestPaginatePageBeyondLast(t *testing.T) {
	p := paginate(9, 10, 35)
	require.NotNil(t, p.Prev)
	assert.Equal(t, 4, *p.Prev, "prev clamps to the last real page")
	assert.Nil(t, p.Next)
}
