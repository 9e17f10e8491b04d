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

// classifyKind is the category the classifier assigns to a token.
type classifyKind int

const (
	clsOptionName classifyKind = iota
	clsCluster
	clsParameter
	clsPositional
	clsUnknown
)

// parseEntry is the classifier's output for one token: the category it
// belongs to and, where relevant, the option it names, any inline value
// riding along ("name=value"), and whether it falls under completion.
type parseEntry struct {
	kind         classifyKind
	key          string
	opt          *OptionDef
	inline       string
	hasInline    bool
	comp         bool
	compPrefix   string
	isNew        bool // starts a new option occurrence, vs. continuing one
	isPositional bool
}

// collectState tracks the option currently accumulating parameters, shared
// across classify calls within one scope's loop.
type collectState struct {
	key       string
	opt       *OptionDef
	collected int
}

func (c *collectState) active() bool { return c != nil && c.key != "" }

// expectsMore reports whether the option currently collecting parameters
// still wants another one, per the getopt_long convention generalized by
// spec §4.3/§4.5: single and array options take exactly one parameter (or
// inline value) per occurrence; function options follow ParamCount.
func (c *collectState) expectsMore() bool {
	if !c.active() {
		return false
	}
	switch c.opt.Type {
	case KindSingle, KindArray:
		return c.collected == 0
	case KindFunction:
		if n, ok := c.opt.ParamCount.Exact(); ok {
			return c.collected < n
		}
		if c.opt.ParamCount.Unlimited() {
			return true
		}
		return c.collected < c.opt.ParamCount.Max
	default:
		return false
	}
}

// classify implements spec §4.3's ranked classification rules for the token
// at tokens[i]. collect carries the accumulation state of the option (if any)
// currently collecting parameters. reg and the scope's prefixes come from
// the enclosing parse context.
func classify(reg *Registry, prefix, clusterPrefix string, collect *collectState, tokens []string, i int) (*parseEntry, error) {
	raw := tokens[i]
	body, _, comp := splitCompletion(raw)

	forced := prefix != "" && strings.HasPrefix(body, prefix)

	// Rule 1
	if collect.active() && collect.expectsMore() && !forced {
		return &parseEntry{kind: clsParameter, key: collect.key, opt: collect.opt, comp: comp}, nil
	}

	name, inline, hasInline := splitInline(body)

	// Rule 2
	if key, opt, ok := reg.Lookup(name); ok {
		if hasInline && opt.Type.Niladic() && !comp {
			return nil, &ParseError{Kind: ErrDisallowedInlineParameter, Key: key, Text: name}
		}
		if hasInline && opt.Inline == InlineDisallowed && !comp {
			return nil, &ParseError{Kind: ErrDisallowedInlineParameter, Key: key, Text: name}
		}
		e := &parseEntry{kind: clsOptionName, key: key, opt: opt, isNew: true, comp: comp}
		if hasInline {
			e.inline, e.hasInline = inline, true
		}
		return e, nil
	}

	// Rule 3
	if acceptsCluster(reg, clusterPrefix, body) {
		return &parseEntry{kind: clsCluster, comp: comp}, nil
	}

	// Rule 4
	if collect.active() && collect.expectsMore() {
		return &parseEntry{kind: clsParameter, key: collect.key, opt: collect.opt, comp: comp}, nil
	}

	// Rule 5
	if reg.Positional != nil && !forced {
		return &parseEntry{
			kind:         clsPositional,
			key:          reg.Positional.Key,
			opt:          reg.Positional.Option,
			isNew:        !collect.active() || collect.key != reg.Positional.Key,
			isPositional: true,
			comp:         comp,
		}, nil
	}

	// Rule 6
	if comp {
		return &parseEntry{kind: clsUnknown, comp: true, compPrefix: name}, nil
	}
	return nil, &ParseError{Kind: ErrUnknownOption, Text: name}
}

// splitInline splits "name=value" on the first '=', reporting whether an
// inline value was present.
func splitInline(token string) (name, value string, hasInline bool) {
	idx := strings.IndexByte(token, '=')
	if idx < 0 {
		return token, "", false
	}
	return token[:idx], token[idx+1:], true
}
