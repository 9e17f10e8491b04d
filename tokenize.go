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

// completionSentinel is the null-byte marker embedded in a token to carry the
// completion cursor position through tokenization (spec §4.9, §9).
const completionSentinel = '\x00'

// Tokenize splits a raw command line into arguments, honoring single and
// double quotes that preserve the enclosed character sequence verbatim (no
// escape processing beyond the quote characters themselves, matching spec
// §6's "preserving the enclosed character sequence").
//
// If completionIndex is >= 0, a completionSentinel byte is inserted into the
// token at that absolute character offset. At the end of the line the
// sentinel joins the last token when no whitespace precedes the offset
// ("--na" at 4 yields "--na\x00"); after trailing whitespace, or on an empty
// line, it forms a token of its own.
func Tokenize(line string, completionIndex int) []string {
	runes := []rune(line)
	if completionIndex >= 0 && completionIndex <= len(runes) {
		withSentinel := make([]rune, 0, len(runes)+1)
		withSentinel = append(withSentinel, runes[:completionIndex]...)
		withSentinel = append(withSentinel, completionSentinel)
		withSentinel = append(withSentinel, runes[completionIndex:]...)
		runes = withSentinel
	}

	var tokens []string
	var cur []rune
	inToken := false
	var quote rune

	flush := func() {
		if inToken {
			tokens = append(tokens, string(cur))
			cur = cur[:0]
			inToken = false
		}
	}

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if quote != 0 {
			if r == quote {
				quote = 0
			} else {
				cur = append(cur, r)
			}
			continue
		}
		switch {
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			cur = append(cur, r)
			inToken = true
		}
	}
	flush()

	if completionIndex >= 0 && len(tokens) == 0 {
		tokens = append(tokens, string(completionSentinel))
	}

	return tokens
}

// splitCompletion reports whether token carries the completion sentinel,
// returning the token with the sentinel removed and the prefix/suffix split
// around it.
func splitCompletion(token string) (prefix, suffix string, comp bool) {
	runes := []rune(token)
	idx := -1
	for i, r := range runes {
		if r == completionSentinel {
			idx = i
			break
		}
	}
	if idx < 0 {
		return token, "", false
	}
	return string(runes[:idx]), string(runes[idx+1:]), true
}

func stripSentinel(token string) string {
	prefix, suffix, comp := splitCompletion(token)
	if !comp {
		return token
	}
	return prefix + suffix
}
