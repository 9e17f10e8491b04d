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
	"fmt"
	"sort"
	"strings"
)

// specifiedSet tracks which option keys have received a value during the
// current scope, from the command line, an environment/file source, or
// standard input. The requirement evaluator and the fallback step both
// consult it.
type specifiedSet map[string]bool

// evalRequire walks expr against values and the specified set, with a single
// negate flag that Not flips and that every other variant applies to its own
// result; there is no separate invert flag. It returns the boolean result,
// and an error only when a callback fails or expr is of an unknown type;
// callers use renderRequire to describe expr in error text.
func evalRequire(expr RequireExpr, values Values, specified specifiedSet, negate bool) (bool, error) {
	switch e := expr.(type) {
	case KeyRef:
		return evalRequire(Entry{Key: string(e), Value: Present}, values, specified, negate)
	case Entry:
		var ok bool
		switch {
		case e.Value == nil:
			ok = !specified[e.Key]
		case e.Value == Present:
			ok = specified[e.Key]
		default:
			ok = deepEqual(values[e.Key], e.Value)
		}
		if negate {
			ok = !ok
		}
		return ok, nil
	case Not:
		return evalRequire(e.Expr, values, specified, !negate)
	case AllOf:
		for _, sub := range e {
			ok, err := evalRequire(sub, values, specified, negate)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil
	case OneOf:
		for _, sub := range e {
			ok, err := evalRequire(sub, values, specified, negate)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil
	case Callback:
		ok, err := e.Fn(values)
		if err != nil {
			return false, err
		}
		if negate {
			ok = !ok
		}
		return ok, nil
	default:
		return false, fmt.Errorf("unknown requirement expression %T", expr)
	}
}

// renderRequire produces a human-readable rendering of expr, used to explain
// unsatisfied requirements in error text. It ignores negate/invert bookkeeping
// and simply describes the expression as written.
func renderRequire(expr RequireExpr) string {
	switch e := expr.(type) {
	case KeyRef:
		return string(e)
	case Entry:
		switch {
		case e.Value == nil:
			return "no " + e.Key
		case e.Value == Present:
			return e.Key
		default:
			return fmt.Sprintf("%s=%v", e.Key, e.Value)
		}
	case Not:
		return "not " + renderRequire(e.Expr)
	case AllOf:
		return joinRequire(e, " and ")
	case OneOf:
		return joinRequire(e, " or ")
	case Callback:
		return "a custom condition"
	default:
		return "?"
	}
}

func joinRequire(exprs []RequireExpr, sep string) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = renderRequire(e)
	}
	return strings.Join(parts, sep)
}

// deepEqual implements the spec's deep-equality rule: element-wise for
// slices, key-set-and-value for maps, reference equality for callbacks
// (preserving the source behavior per spec §9's second Open Question), and
// strict equality otherwise.
func deepEqual(a, b any) bool {
	if af, ok := a.(RequireFunc); ok {
		bf, ok := b.(RequireFunc)
		return ok && sameFunc(af, bf)
	}

	switch av := a.(type) {
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case []string:
		bv, ok := b.([]string)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, present := bv[k]
			if !present || !deepEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// sameFunc compares two func values by reference identity using their
// reflect.Value pointer, since Go funcs are not comparable with ==.
func sameFunc(a, b any) bool {
	return fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b)
}

// sortedKeys is a small shared helper used by the validator and registry to
// produce deterministic iteration order over a Schema for error/warning
// ordering.
func sortedKeys(schema Schema) []string {
	keys := make([]string, 0, len(schema))
	for k := range schema {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
