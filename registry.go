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

// PositionalInfo identifies the single option (if any) at a schema level
// that accepts bare positional arguments without a marker.
type PositionalInfo struct {
	Key           string
	Option        *OptionDef
	PreferredName string
}

// Registry indexes a Schema for constant-time lookups by the classifier.
// Validate must run (and succeed) before Build, since Build assumes names
// and cluster letters are unique.
type Registry struct {
	Schema        Schema
	NameToKey     map[string]string
	LetterToKey   map[rune]string
	Positional    *PositionalInfo
}

// BuildRegistry indexes schema. As a side effect, any option lacking a
// PreferredName has its PreferredName set to its first non-skipped Name
// (spec §4.1).
func BuildRegistry(schema Schema) *Registry {
	reg := &Registry{
		Schema:      schema,
		NameToKey:   make(map[string]string),
		LetterToKey: make(map[rune]string),
	}

	for _, key := range sortedKeys(schema) {
		opt := schema[key]

		if opt.PreferredName == "" {
			for _, n := range opt.Names {
				if !n.Skip && n.Text != "" {
					opt.PreferredName = n.Text
					break
				}
			}
		}

		for _, n := range opt.Names {
			if !n.Skip && n.Text != "" {
				reg.NameToKey[n.Text] = key
			}
		}
		if opt.TrailingMarker != "" {
			reg.NameToKey[opt.TrailingMarker] = key
		}
		for _, l := range opt.Cluster {
			reg.LetterToKey[l] = key
		}
		if opt.Positional {
			reg.Positional = &PositionalInfo{Key: key, Option: opt, PreferredName: opt.PreferredName}
		}
	}

	return reg
}

// Lookup resolves a name (long-form or otherwise) to its key/option pair.
func (r *Registry) Lookup(name string) (key string, opt *OptionDef, ok bool) {
	key, ok = r.NameToKey[name]
	if !ok {
		return "", nil, false
	}
	return key, r.Schema[key], true
}

// LookupLetter resolves a single cluster letter to its key/option pair.
func (r *Registry) LookupLetter(letter rune) (key string, opt *OptionDef, ok bool) {
	key, ok = r.LetterToKey[letter]
	if !ok {
		return "", nil, false
	}
	return key, r.Schema[key], true
}

// Names returns every registered name (including trailing markers),
// suitable as the universe for name completion.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.NameToKey))
	for n := range r.NameToKey {
		names = append(names, n)
	}
	return names
}
