// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valeXeich/Mangalib/pkg/query"
)

/*
TestIntSlice verifies that invalid integer entries are skipped silently.
*/
func TestIntSlice(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, query.IntSlice([]string{"1", "2", "3"}))
	assert.Equal(t, []int{5}, query.IntSlice([]string{"x", "5", ""}))
	assert.Nil(t, query.IntSlice(nil))
}

/*
TestStringSlice verifies comma-separated parsing with trimming.
*/
func TestStringSlice(t *testing.T) {
	assert.Equal(t, []string{"action", "drama"}, query.StringSlice("action, drama"))
	assert.Equal(t, []string{"seinen"}, query.StringSlice("seinen,,  "))
	assert.Nil(t, query.StringSlice(""))
}

/*
TestIntCSV verifies combined comma-separated integer parsing.
*/
func TestIntCSV(t *testing.T) {
	assert.Equal(t, []int{4, 7}, query.IntCSV("4,7"))
	assert.Equal(t, []int{9}, query.IntCSV("9, oops"))
	assert.Nil(t, query.IntCSV(""))
}
