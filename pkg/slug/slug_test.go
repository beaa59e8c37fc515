// Copyright (c) 2026 Bazario. All rights reserved.

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nqhuan/bazario/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "simple words", input: "Home Appliances", expected: "home-appliances"},
		{name: "accents stripped", input: "Électronique & Café", expected: "electronique-cafe"},
		{name: "punctuation collapsed", input: "Books -- Fiction!!", expected: "books-fiction"},
		{name: "leading and trailing noise", input: "  --Toys--  ", expected: "toys"},
		{name: "digits preserved", input: "Top 10 Gadgets", expected: "top-10-gadgets"},
		{name: "already a slug", input: "home-appliances", expected: "home-appliances"},
		{name: "empty input", input: "", expected: ""},
		{name: "only symbols", input: "!@#$%", expected: ""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.expected, slug.From(testCase.input))
		})
	}
}
