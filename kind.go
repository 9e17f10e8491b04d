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

import "strconv"

// Kind is the tag of an option definition's variant.
type Kind string

const (
	KindHelp     Kind = "help"
	KindVersion  Kind = "version"
	KindCommand  Kind = "command"
	KindFlag     Kind = "flag"
	KindSingle   Kind = "single"
	KindArray    Kind = "array"
	KindFunction Kind = "function"
)

// Niladic reports whether options of this kind consume no parameters.
func (k Kind) Niladic() bool {
	switch k {
	case KindHelp, KindVersion, KindCommand, KindFlag:
		return true
	default:
		return false
	}
}

// Message reports whether options of this kind raise a terminating message
// (help text or version text) rather than storing a value.
func (k Kind) Message() bool {
	return k == KindHelp || k == KindVersion
}

// Variadic reports whether a single occurrence of this kind may consume an
// unbounded or caller-configured number of parameter tokens. Single and
// array options always consume exactly one token per occurrence (array's
// plurality comes from repeated occurrences or a Separator split within
// that one token); only function options are variadic in this sense, which
// is why cluster expansion and the validator's cluster-letter warning key
// on KindFunction specifically.
func (k Kind) Variadic() bool {
	return k == KindFunction
}

// InlineMode controls whether "name=value" syntax is permitted for an
// option.
type InlineMode int

const (
	// InlineAllowed permits but does not require "name=value" syntax. This
	// is the zero value.
	InlineAllowed InlineMode = iota
	// InlineDisallowed rejects "name=value" syntax outside of completion.
	InlineDisallowed
	// InlineRequired mandates "name=value" syntax.
	InlineRequired
)

// ParamCount constrains the number of parameters a function option accepts.
//
// A zero value means unlimited. Setting Min == Max requires exactly that
// many parameters. Setting Max < 0 with Min >= 0 means "at least Min".
// A range requires 0 <= Min < Max.
type ParamCount struct {
	Min int
	Max int // < 0 means unlimited
}

// Unlimited reports whether c places no upper bound on parameter count.
func (c ParamCount) Unlimited() bool {
	return c.Max < 0 || c == ParamCount{}
}

// Exact reports whether c requires exactly n parameters, returning n and ok.
func (c ParamCount) Exact() (n int, ok bool) {
	if !c.Unlimited() && c.Min == c.Max {
		return c.Min, true
	}
	return 0, false
}

// valid reports whether c satisfies the schema invariant 0 <= Min < Max for
// a bounded range, or Min >= 0 for an unbounded one.
func (c ParamCount) valid() bool {
	if c.Min < 0 {
		return false
	}
	if c.Unlimited() {
		return true
	}
	return c.Min < c.Max || c.Min == c.Max
}

// describe renders a human-readable description of the count, used in
// "missing parameter" error messages.
func (c ParamCount) describe() string {
	switch {
	case c.Unlimited() && c.Min <= 0:
		return "any number of parameters"
	case c.Unlimited():
		return "at least " + strconv.Itoa(c.Min) + " parameter(s)"
	case c.Min == c.Max:
		return "exactly " + strconv.Itoa(c.Min) + " parameter(s)"
	default:
		return "between " + strconv.Itoa(c.Min) + " and " + strconv.Itoa(c.Max) + " parameters"
	}
}
