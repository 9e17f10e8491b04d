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
	"encoding/json"
	"errors"
	"log/slog"
	"os"
)

// ParseFlags configures Parse and ParseInto. Parse starts from a "-" cluster
// prefix, no option prefix, CompletionIndex -1 (no completion) and no module
// resolver, then applies the given options.
type ParseFlags struct {
	// ProgramName seeds help/usage rendering and nested command names.
	ProgramName string
	// ClusterPrefix is the prefix that introduces a short-option cluster
	// (e.g. "-" for "-fv"). Empty disables cluster recognition.
	ClusterPrefix string
	// OptionPrefix, when set, forces any token beginning with it to be
	// tested as an option name even while a previous option is still
	// collecting parameters (spec §4.3 rule 4).
	OptionPrefix string
	// CompletionIndex, when >= 0, requests completion candidates for the
	// character offset into the joined command line instead of a parse.
	CompletionIndex int
	// Resolver resolves nested command module specifiers and version files.
	Resolver ModuleResolver
	// SimilarityThreshold is forwarded to the implicit Validate call.
	SimilarityThreshold float64
	// SkipValidate bypasses the implicit Validate call Parse normally runs
	// first. Useful when the caller already validated the schema once and
	// wants to avoid re-checking it on every parse.
	SkipValidate bool
}

// WithProgramName sets the program name used in help/usage text.
func WithProgramName(name string) func(*ParseFlags) {
	return func(f *ParseFlags) { f.ProgramName = name }
}

// WithClusterPrefix overrides the default "-" cluster prefix.
func WithClusterPrefix(prefix string) func(*ParseFlags) {
	return func(f *ParseFlags) { f.ClusterPrefix = prefix }
}

// WithOptionPrefix installs a forced option-name prefix.
func WithOptionPrefix(prefix string) func(*ParseFlags) {
	return func(f *ParseFlags) { f.OptionPrefix = prefix }
}

// WithCompletionIndex requests completion candidates for the given character
// offset instead of a normal parse.
func WithCompletionIndex(index int) func(*ParseFlags) {
	return func(f *ParseFlags) { f.CompletionIndex = index }
}

// WithParseResolver installs a module resolver for command/version lookups.
func WithParseResolver(r ModuleResolver) func(*ParseFlags) {
	return func(f *ParseFlags) { f.Resolver = r }
}

// WithParseSimilarityThreshold forwards a similarity threshold to the
// implicit Validate call.
func WithParseSimilarityThreshold(t float64) func(*ParseFlags) {
	return func(f *ParseFlags) { f.SimilarityThreshold = t }
}

// WithSkipValidate bypasses the implicit Validate call.
func WithSkipValidate(f *ParseFlags) { f.SkipValidate = true }

func newParseFlags(opts ...func(*ParseFlags)) *ParseFlags {
	f := &ParseFlags{ClusterPrefix: "-", CompletionIndex: -1}
	for _, o := range opts {
		o(f)
	}
	return f
}

// scope is the transient per-call (and per-nested-command) parsing state:
// the registry for this level, the values collected so far, the set of keys
// already specified, and the flags/shared state inherited from the run.
type scope struct {
	registry  *Registry
	values    Values
	specified specifiedSet
	flags     *ParseFlags
	warnings  *[]Warning
	stdinRead *bool
}

// Result is what Parse returns on a successful, non-message parse.
type Result struct {
	Values   Values
	Warnings []Warning
}

// Parse parses args against schema, returning the collected values and
// warnings. If a help or version option is triggered, Parse returns a
// *Message wrapped as the error (detect with errors.As); completion results
// are likewise delivered as a *Message with Kind == MessageCompletion whose
// Text is a newline-joined candidate list.
func Parse(schema Schema, args []string, opts ...func(*ParseFlags)) (*Result, error) {
	flags := newParseFlags(opts...)
	warnings := []Warning{}
	if !flags.SkipValidate {
		vw, err := Validate(schema, WithSimilarityThreshold(flags.SimilarityThreshold), WithResolver(flags.Resolver))
		if err != nil {
			return nil, err
		}
		warnings = append(warnings, vw...)
	}

	stdinRead := false
	sc := &scope{
		registry:  BuildRegistry(schema),
		values:    Values{},
		specified: specifiedSet{},
		flags:     flags,
		warnings:  &warnings,
		stdinRead: &stdinRead,
	}

	if _, err := sc.run(args); err != nil {
		return nil, err
	}
	if err := runFallbacks(sc, schema); err != nil {
		return nil, err
	}
	if err := checkRequirements(sc, schema); err != nil {
		return nil, err
	}
	return &Result{Values: sc.values, Warnings: warnings}, nil
}

// ParseInto parses args and then unmarshals the resulting values into dst (a
// pointer to a struct or map) via encoding/json, round-tripping through the
// Values map so existing `json` struct tags apply unchanged.
func ParseInto(schema Schema, args []string, dst any, opts ...func(*ParseFlags)) (*Result, error) {
	res, err := Parse(schema, args, opts...)
	if err != nil {
		return nil, err
	}
	buf, err := json.Marshal(res.Values)
	if err != nil {
		return res, err
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return res, err
	}
	return res, nil
}

// run executes the classify/cluster/param loop over tokens for this scope.
// On success it returns len(tokens) (counted after cluster expansion); when
// it stops with an error or a message, it returns the index of the token
// being handled.
func (sc *scope) run(tokens []string) (int, error) {
	if sc.flags.CompletionIndex >= 0 {
		line := joinForCompletion(tokens)
		tokens = Tokenize(line, sc.flags.CompletionIndex)
	}

	var collect *collectState
	var params []string
	var markerKey string
	var markerOpt *OptionDef
	markerSeen := false
	halt := false

	i := 0

	finalize := func() error {
		if collect == nil {
			return nil
		}
		info := ParamInfo{Values: sc.values, Name: collect.key, Index: 0}
		skip, err := handleParams(collect.opt, collect.key, params, info, sc.values, false)
		if err != nil {
			return err
		}
		sc.specified[collect.key] = true
		brk := collect.opt.Break
		collect, params = nil, nil
		if skip > 0 {
			remaining := len(tokens) - i - 1
			if skip > remaining {
				skip = remaining
			}
			i += skip
		}
		if brk {
			halt = true
		}
		return nil
	}

	for ; i < len(tokens) && !halt; i++ {
		raw := tokens[i]
		body, _, comp := splitCompletion(raw)

		if !markerSeen {
			if key, opt := findMarker(sc.registry.Schema, body); key != "" {
				if err := finalize(); err != nil {
					return i, err
				}
				markerSeen, markerKey, markerOpt = true, key, opt
				continue
			}
		}

		if markerSeen {
			if collect == nil || collect.key != markerKey {
				if err := finalize(); err != nil {
					return i, err
				}
				collect = &collectState{key: markerKey, opt: markerOpt}
			}
			params = append(params, body)
			collect.collected++
			continue
		}

		entry, err := classify(sc.registry, sc.flags.OptionPrefix, sc.flags.ClusterPrefix, collect, tokens, i)
		if err != nil {
			if comp {
				continue
			}
			if perr, ok := err.(*ParseError); ok && errors.Is(perr.Kind, ErrUnknownOption) && sc.flags.SimilarityThreshold > 0 {
				perr.Suggestions = suggestNames(perr.Text, sc.registry.Names(), sc.flags.SimilarityThreshold)
			}
			return i, err
		}

		if entry.comp && sc.flags.CompletionIndex >= 0 {
			return i, completionMessage(sc, entry, tokens, i)
		}

		switch entry.kind {
		case clsCluster:
			expanded, err := expandCluster(sc.registry, sc.flags.ClusterPrefix, body)
			if err != nil {
				return i, err
			}
			tail := append([]string{}, tokens[i+1:]...)
			tokens = append(append(append([]string{}, tokens[:i]...), expanded...), tail...)
			i--
			continue

		case clsOptionName:
			if err := finalize(); err != nil {
				return i, err
			}
			if halt {
				continue
			}
			if entry.opt.Deprecated {
				w := Warning{Kind: WarnDeprecatedOption, Key: entry.key, Message: "option is deprecated"}
				*sc.warnings = append(*sc.warnings, w)
				slog.Warn(w.String())
			}
			consumed, msg, err := sc.dispatchOption(entry, tokens[i+1:])
			if err != nil {
				return i, err
			}
			if msg != nil {
				return i, msg
			}
			deferred := consumed == 0 && !entry.hasInline && !entry.opt.Type.Niladic() && !entry.opt.Type.Message()
			if deferred {
				collect = &collectState{key: entry.key, opt: entry.opt}
			} else if entry.opt.Break {
				halt = true
			}
			i += consumed
			continue

		case clsParameter, clsPositional:
			if collect == nil || collect.key != entry.key {
				if err := finalize(); err != nil {
					return i, err
				}
				collect = &collectState{key: entry.key, opt: entry.opt}
			}
			params = append(params, body)
			collect.collected++
			if !collect.expectsMore() {
				if err := finalize(); err != nil {
					return i, err
				}
			}

		case clsUnknown:
			// completion-only unknown token; nothing to accumulate.
		}
	}

	if err := finalize(); err != nil {
		return len(tokens), err
	}
	return len(tokens), nil
}

// dispatchOption handles a newly classified option-name token, including its
// inline value if present, and returns how many of the following tokens it
// consumed: the remainder for a command, the arguments a help option with
// SaveMessage used, the skip count a function option's Parse requested for
// an inline value, and 0 otherwise.
func (sc *scope) dispatchOption(entry *parseEntry, rest []string) (consumed int, msg *Message, err error) {
	opt, key := entry.opt, entry.key
	info := ParamInfo{Values: sc.values, Name: key}

	switch {
	case opt.Type == KindHelp:
		m, n, herr := handleHelp(sc, sc.registry.Schema, opt, rest)
		if herr != nil {
			return 0, nil, herr
		}
		if opt.SaveMessage {
			sc.values[key] = m.Text
			return n, nil, nil
		}
		return n, m, nil

	case opt.Type == KindVersion:
		m, verr := handleVersion(sc, opt)
		if verr != nil {
			return 0, nil, verr
		}
		if opt.SaveMessage {
			sc.values[key] = m.Text
			return 0, nil, nil
		}
		return 0, m, nil

	case opt.Type == KindCommand:
		n, cerr := handleCommand(sc, opt, key, entry.keyName(opt), rest)
		if cerr != nil {
			return n, nil, cerr
		}
		sc.specified[key] = true
		return len(rest), nil, nil

	case opt.Type == KindFlag:
		if entry.hasInline {
			v, perr := opt.Parse([]string{entry.inline}, info)
			if perr != nil {
				return 0, nil, perr
			}
			sc.values[key] = v
		} else if err := handleFlag(opt, key, info, sc.values); err != nil {
			return 0, nil, err
		}
		sc.specified[key] = true
		return 0, nil, nil

	case entry.hasInline:
		skip, err := handleParams(opt, key, []string{entry.inline}, info, sc.values, entry.comp)
		if err != nil {
			return 0, nil, err
		}
		sc.specified[key] = true
		return skip, nil, nil

	default:
		if opt.Inline == InlineRequired {
			return 0, nil, &ParseError{Kind: ErrMissingInlineParameter, Key: key}
		}
		return 0, nil, nil
	}
}

// keyName returns the token text that matched, for use as a command's
// program-name suffix; parseEntry does not retain the matched literal, so
// this falls back to the option's preferred name.
func (e *parseEntry) keyName(opt *OptionDef) string {
	if opt.PreferredName != "" {
		return opt.PreferredName
	}
	return e.key
}

// findMarker reports whether body exactly matches some option's
// TrailingMarker, returning that option's key.
func findMarker(schema Schema, body string) (string, *OptionDef) {
	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		if opt.TrailingMarker != "" && opt.TrailingMarker == body {
			return key, opt
		}
	}
	return "", nil
}

func joinForCompletion(tokens []string) string {
	out := ""
	for i, t := range tokens {
		if i > 0 {
			out += " "
		}
		out += t
	}
	return out
}

// checkRequirements validates Required/Requires/RequiredIf for every option
// in schema against the final values/specified set of the given scope (the
// top-level scope, or a nested command's scope), per spec §4.8.
func checkRequirements(sc *scope, schema Schema) error {
	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		if opt.Required && !sc.specified[key] {
			return &ParseError{Kind: ErrMissingRequiredOption, Key: key}
		}
		if opt.Requires != nil && sc.specified[key] {
			ok, err := evalRequire(opt.Requires, sc.values, sc.specified, false)
			if err != nil {
				return err
			}
			if !ok {
				return &ParseError{Kind: ErrUnsatisfiedRequirement, Key: key, Text: renderRequire(opt.Requires)}
			}
		}
		if opt.RequiredIf != nil {
			ok, err := evalRequire(opt.RequiredIf, sc.values, sc.specified, false)
			if err != nil {
				return err
			}
			if ok && !sc.specified[key] {
				return &ParseError{Kind: ErrUnsatisfiedConditional, Key: key, Text: renderRequire(opt.RequiredIf)}
			}
		}
	}
	return nil
}

// stdinReadOnce reads os.Stdin to completion at most once per Parse call
// (nested commands share the flag). Only the first option with Stdin set
// that reaches it receives the data; later callers get nil.
func stdinReadOnce(sc *scope) ([]byte, error) {
	if *sc.stdinRead {
		return nil, nil
	}
	*sc.stdinRead = true
	data, err := readAllStdin()
	if err != nil && !errors.Is(err, os.ErrClosed) {
		slog.Warn("reading standard input for option defaults failed", "error", err)
		return nil, nil
	}
	return data, nil
}
