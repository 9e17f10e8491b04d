// Copyright (c) 2024 dsogari
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package tsargp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGestaltRatio(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		a, b     string
		expected float64
	}{
		"identical":       {"verbose", "verbose", 1},
		"both empty":      {"", "", 1},
		"one empty":       {"verbose", "", 0},
		"completely different": {"abc", "xyz", 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tc.expected, gestaltRatio(tc.a, tc.b), 0.0001)
		})
	}
}

func TestGestaltRatioSimilarNames(t *testing.T) {
	t.Parallel()
	r := gestaltRatio("verbose", "verbse")
	assert.Greater(t, r, 0.8)
}

func TestSuggestNames(t *testing.T) {
	t.Parallel()
	hits := suggestNames("verbse", []string{"verbose", "version", "quiet"}, 0.5)
	if assert.NotEmpty(t, hits) {
		assert.Equal(t, "verbose", hits[0])
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	t.Parallel()
	startA, startB, length := longestCommonSubstring([]rune("abcdef"), []rune("zzcdefzz"))
	assert.Equal(t, 2, startA)
	assert.Equal(t, 2, startB)
	assert.Equal(t, 4, length)
}
