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

// gestaltRatio computes the Ratcliff/Obershelp "Gestalt Pattern Matching"
// similarity between a and b: twice the number of matched characters
// divided by the combined length of both strings. It is used for both the
// validator's too-similar-names warning and the parse loop's "did you mean"
// suggestions for unknown options.
//
// No similarity/fuzzy-matching library appears anywhere in the retrieval
// pack (see DESIGN.md), so this is a from-scratch stdlib-only implementation
// rather than an adapted dependency.
func gestaltRatio(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	ar, br := []rune(a), []rune(b)
	matches := gestaltMatches(ar, br)
	return 2 * float64(matches) / float64(len(ar)+len(br))
}

// gestaltMatches recursively sums the length of the longest common
// substring between a and b, then the matches found to its left and right.
func gestaltMatches(a, b []rune) int {
	start1, start2, length := longestCommonSubstring(a, b)
	if length == 0 {
		return 0
	}
	total := length
	total += gestaltMatches(a[:start1], b[:start2])
	total += gestaltMatches(a[start1+length:], b[start2+length:])
	return total
}

// longestCommonSubstring returns the start index in a, start index in b, and
// length of the longest common contiguous run between a and b.
func longestCommonSubstring(a, b []rune) (startA, startB, length int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	best := 0
	bestEndA := 0
	bestEndB := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > best {
					best = curr[j]
					bestEndA = i
					bestEndB = j
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return bestEndA - best, bestEndB - best, best
}

// suggestNames returns names from candidates whose gestaltRatio against
// target is >= threshold, ordered by descending similarity.
func suggestNames(target string, candidates []string, threshold float64) []string {
	type scored struct {
		name  string
		ratio float64
	}
	var hits []scored
	for _, c := range candidates {
		if r := gestaltRatio(target, c); r >= threshold {
			hits = append(hits, scored{c, r})
		}
	}
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].ratio > hits[j-1].ratio; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.name
	}
	return out
}
