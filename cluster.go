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

import "strings"

// acceptsCluster reports whether token looks like a short-form cluster
// argument: it begins with clusterPrefix and its first letter resolves to a
// registered cluster letter. Later letters are not checked here -- an
// unresolved later letter still makes the token a cluster, just one that
// degrades to an inline parameter (see expandCluster).
func acceptsCluster(reg *Registry, clusterPrefix, token string) bool {
	if clusterPrefix == "" || !strings.HasPrefix(token, clusterPrefix) {
		return false
	}
	body := strings.TrimPrefix(token, clusterPrefix)
	if body == "" {
		return false
	}
	letters := []rune(body)
	_, _, ok := reg.LookupLetter(letters[0])
	return ok
}

// expandCluster rewrites a cluster token into an equivalent sequence of
// option-name tokens (spec §4.4), preserving order. An unresolved letter
// makes the whole cluster a single "firstName=rest" token for the first
// letter's option. A single/array letter before the end ends the expansion:
// the names gathered so far are followed by "name=rest" for that letter.
func expandCluster(reg *Registry, clusterPrefix, token string) ([]string, error) {
	body := strings.TrimPrefix(token, clusterPrefix)
	letters := []rune(body)

	var names []string
	for idx, l := range letters {
		key, opt, ok := reg.LookupLetter(l)
		if !ok {
			firstName := clusterLetterName(reg, clusterPrefix, letters[0])
			rest := string(letters[1:])
			return []string{firstName + "=" + rest}, nil
		}

		last := idx == len(letters)-1
		if !last && (opt.Type == KindCommand || opt.Type.Variadic()) {
			return nil, &ParseError{Kind: ErrInvalidClusterOption, Key: key, Text: string(l)}
		}

		name := clusterLetterName(reg, clusterPrefix, l)
		if opt.Type.Niladic() {
			names = append(names, name)
			continue
		}

		// Monadic (single/array) or variadic/command as the final letter:
		// the rest of the cluster string, if any, becomes its inline value;
		// otherwise its parameter comes from the following argument as usual.
		if !last {
			names = append(names, name+"="+string(letters[idx+1:]))
			return names, nil
		}
		names = append(names, name)
	}
	return names, nil
}

// clusterLetterName returns a name to splice in for letter's option: a
// registered long-form Name equal to clusterPrefix+letter if one exists,
// otherwise the option's preferred name.
func clusterLetterName(reg *Registry, clusterPrefix string, letter rune) string {
	_, opt, ok := reg.LookupLetter(letter)
	if !ok {
		return clusterPrefix + string(letter)
	}
	want := clusterPrefix + string(letter)
	for _, n := range opt.Names {
		if !n.Skip && n.Text == want {
			return want
		}
	}
	if opt.PreferredName != "" {
		return opt.PreferredName
	}
	return want
}
