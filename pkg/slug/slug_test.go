// Copyright (c) 2026 The Mangalib Authors. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/valeXeich/Mangalib/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline across typical titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Berserk", "berserk"},
		{"spaces", "One Punch Man", "one-punch-man"},
		{"accents", "Pokémon Adventures", "pokemon-adventures"},
		{"punctuation", "Dr. STONE!!", "dr-stone"},
		{"digits", "86: Eighty Six", "86-eighty-six"},
		{"multi_space", "A   B", "a-b"},
		{"leading_trailing", "  Trim Me  ", "trim-me"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
