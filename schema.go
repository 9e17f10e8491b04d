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

import "regexp"

// Values holds the parsed (or partially parsed) value for every option key
// touched so far during a parse. Nested commands store their own Values map
// at the command option's key. Array options store a []any (after mapping
// or parsing); use [Values.Strings] for the common all-string case.
type Values map[string]any

// Strings returns the value at key as a []string, converting from the
// []any an array option normally stores. It returns nil if the key is
// unset or not string-convertible.
func (v Values) Strings(key string) []string {
	raw, ok := v[key].([]any)
	if !ok {
		if s, ok := v[key].([]string); ok {
			return s
		}
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil
		}
		out = append(out, s)
	}
	return out
}

// presentSentinel is the unique value meaning "key must be present" in a
// requirement Entry, corresponding to the source language's `undefined`.
type presentSentinel struct{}

// Present is used as an Entry.Value to mean "the referenced option must be
// specified (or carry a value after defaults run)". A Go `nil` Entry.Value
// means the opposite: "the referenced option must be absent".
var Present = presentSentinel{}

// Name is one slot in an option's Names sequence. A Name with Skip set (see
// NamesSkip) represents the JS source's `null` "slot skip", preserving column alignment
// between options whose naming conventions differ by slot.
type Name struct {
	Text string
	Skip bool
}

// N is a convenience constructor for a non-skipped Name.
func N(text string) Name { return Name{Text: text} }

// NamesSkip is a convenience constructor for a skipped name slot.
var NamesSkip = Name{Skip: true}

// ParamInfo is passed to Parse and Complete callbacks.
type ParamInfo struct {
	// Values is the in-progress values map for the current scope.
	Values Values
	// Index is always 0: the engine does not record where an option
	// occurrence appears in the argument list.
	Index int
	// Name is the option's key in the schema; a command option's Parse
	// receives the command's preferred name instead. The literal name typed
	// on the command line is not passed.
	Name string
	// Comp reports whether this invocation happens during completion.
	Comp bool
	// Prev is the previous token, supplied to completion callbacks.
	Prev string
	// SkipCount lets a function option's Parse callback request that the
	// engine skip additional following arguments. The engine clamps the
	// requested count at the number of arguments actually remaining.
	SkipCount *int
}

// DefaultFunc produces a default value for an unspecified option, given the
// values collected so far in the current scope.
type DefaultFunc func(values Values) (any, error)

// ParseFunc maps one or more raw parameters to a stored value.
type ParseFunc func(params []string, info ParamInfo) (any, error)

// RequireFunc is a requirement-expression callback, evaluated against the
// values collected so far.
type RequireFunc func(values Values) (bool, error)

// CompleteFunc returns completion candidates for an option's parameter,
// given the prefix already typed and contextual info.
type CompleteFunc func(prefix string, info ParamInfo) ([]string, error)

// OptionsProvider lazily produces a nested command's schema. Its result is
// not cached: it is called each time the schema is resolved, which during
// one Parse call means once by the implicit Validate recursion (unless
// skipped) and once more when the command or a UseCommand help option is
// handled.
type OptionsProvider func() (Schema, error)

// ModuleResolver resolves a module specifier (for a nested command's Options
// field, or for a version option's JSON file) to schema/file content. It is
// supplied by the caller; the engine never imports a module system itself.
type ModuleResolver interface {
	// ResolveSchema resolves a "module specifier" Options value to a Schema.
	ResolveSchema(specifier string) (Schema, error)
	// ResolveFile resolves a path to file content, for `sources` URLs and
	// for a version option's JSON-file reference.
	ResolveFile(path string) ([]byte, error)
}

// OptionDef is the common attribute set for every option kind. Only the
// attributes relevant to Type are consulted. Validate does not check which
// attributes a kind supports; attributes that do not apply to Type are
// ignored.
type OptionDef struct {
	Type Kind

	// Names, PreferredName, TrailingMarker, Cluster, Positional
	Names          []Name
	PreferredName  string
	TrailingMarker string
	Positional     bool
	Cluster        []rune

	// Help metadata
	Group      string
	Synopsis   string
	Deprecated bool
	Styles     []string
	Link       string

	// Requirement / defaulting
	Required   bool
	Default    any // literal value, or DefaultFunc
	Requires   RequireExpr
	RequiredIf RequireExpr
	Sources    []string // env var names, or "file://" URLs
	Stdin      bool
	Break      bool

	// Parameter handling (single, array, function)
	Parse     ParseFunc
	ParamCount ParamCount // function only
	Separator  string      // literal or "/regex/"-delimited pattern, array only
	Unique     bool        // array only
	Limit      int         // array only, <= 0 means unbounded
	Append     bool        // array only
	Regex      *regexp.Regexp
	Choices    []string
	Mapping    map[string]any
	Normalize  func(string) string
	Complete   CompleteFunc
	Inline     InlineMode

	// command
	Options       any // Schema, OptionsProvider, or a module specifier string
	ClusterPrefix string
	OptionPrefix  string

	// version
	Version string // literal text, or a ".json" file path

	// help
	UseCommand  bool
	UseFilter   bool
	SaveMessage bool
}

// Schema maps an option key to its definition.
type Schema map[string]*OptionDef

// RequireExpr is the recursive requirement-expression sum type used by
// Requires, RequiredIf, and by help rendering. The concrete variants are
// KeyRef, Entry, AllOf, OneOf, Not and Callback.
type RequireExpr interface {
	requireExpr()
}

// KeyRef is shorthand for Entry{Key: Key, Value: Present}: the referenced
// option must be specified.
type KeyRef string

func (KeyRef) requireExpr() {}

// Entry asserts a specific relationship between a key and a value:
//
//   - Value == nil: the option must be absent.
//   - Value == Present: the option must be specified.
//   - otherwise: the option's stored value must deep-equal Value.
type Entry struct {
	Key   string
	Value any
}

func (Entry) requireExpr() {}

// AllOf is satisfied when every sub-expression is satisfied. An empty AllOf
// is vacuously true.
type AllOf []RequireExpr

func (AllOf) requireExpr() {}

// OneOf is satisfied when any sub-expression is satisfied. An empty OneOf is
// false.
type OneOf []RequireExpr

func (OneOf) requireExpr() {}

// Not negates a sub-expression.
type Not struct{ Expr RequireExpr }

func (Not) requireExpr() {}

// Callback evaluates an arbitrary predicate over the current values.
type Callback struct{ Fn RequireFunc }

func (Callback) requireExpr() {}

// Require builds the shorthand "must be specified" expression for key.
func Require(key string) RequireExpr { return KeyRef(key) }
