package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(source string) []string {
	var specs []string
	for s := range ExtractSpecifiers(source) {
		specs = append(specs, s)
	}
	return specs
}

func TestExtractSpecifiers(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected []string
	}{
		{
			name:     "default import",
			source:   `import React from 'react';`,
			expected: []string{"react"},
		},
		{
			name:     "named import",
			source:   `import { useState, useEffect } from "react";`,
			expected: []string{"react"},
		},
		{
			name:     "namespace import",
			source:   `import * as _ from 'lodash';`,
			expected: []string{"lodash"},
		},
		{
			name:     "side-effect import",
			source:   `import 'normalize.css';`,
			expected: []string{"normalize.css"},
		},
		{
			name:     "re-export",
			source:   `export { helper } from './lib/helper';`,
			expected: []string{"./lib/helper"},
		},
		{
			name:     "require call",
			source:   `const fs = require('fs');`,
			expected: []string{"fs"},
		},
		{
			name:     "dynamic import",
			source:   `const mod = await import("lazy-pkg");`,
			expected: []string{"lazy-pkg"},
		},
		{
			name:     "whitespace variation",
			source:   "import   {a,\n  b}   from   'spaced-pkg'",
			expected: []string{"spaced-pkg"},
		},
		{
			name: "discovery order preserved across forms",
			source: `import a from 'first';
const b = require('second');
import 'third';
export * from 'fourth';`,
			expected: []string{"first", "second", "third", "fourth"},
		},
		{
			name:     "repeated imports yield repeated specifiers",
			source:   `import a from 'dup'; import b from 'dup';`,
			expected: []string{"dup", "dup"},
		},
		{
			name:     "malformed input extracts nothing",
			source:   `this is not javascript at all`,
			expected: nil,
		},
		{
			name:     "empty source",
			source:   "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, collect(tt.source))
		})
	}
}

func TestExtractSpecifiersStopsEarly(t *testing.T) {
	source := `import a from 'one'; import b from 'two'; import c from 'three';`

	var got []string
	for s := range ExtractSpecifiers(source) {
		got = append(got, s)
		if len(got) == 2 {
			break
		}
	}

	assert.Equal(t, []string{"one", "two"}, got)
}
