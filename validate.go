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
	"log/slog"
	"reflect"
	"strings"
	"unicode"
)

// ValidateFlags configures Validate and the recursive schema checks that
// Parse runs implicitly.
type ValidateFlags struct {
	// NoRecurse suppresses validation of nested command schemas.
	NoRecurse bool
	// SimilarityThreshold is the Gestalt ratio (0..1) above which two names
	// are flagged as too similar. Zero disables the check.
	SimilarityThreshold float64
	// Resolver resolves nested command "module specifier" Options values.
	// Required only if some command's Options field is a string.
	Resolver ModuleResolver
}

// WithNoRecurse disables nested-schema validation.
func WithNoRecurse(v *ValidateFlags) { v.NoRecurse = true }

// WithSimilarityThreshold sets the name-similarity warning threshold.
func WithSimilarityThreshold(t float64) func(*ValidateFlags) {
	return func(v *ValidateFlags) { v.SimilarityThreshold = t }
}

// WithResolver installs a module resolver.
func WithResolver(r ModuleResolver) func(*ValidateFlags) {
	return func(v *ValidateFlags) { v.Resolver = r }
}

func newValidateFlags(opts ...func(*ValidateFlags)) *ValidateFlags {
	f := &ValidateFlags{}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Validate checks schema well-formedness per spec §4.2, recursing into
// nested commands unless NoRecurse is set. It returns collected warnings, or
// a fatal error for the first schema violation found.
func Validate(schema Schema, opts ...func(*ValidateFlags)) ([]Warning, error) {
	flags := newValidateFlags(opts...)
	v := &validator{flags: flags, visited: map[uintptr]bool{}}
	err := v.validateLevel(schema, "")
	return v.warnings, err
}

type validator struct {
	flags    *ValidateFlags
	visited  map[uintptr]bool
	warnings []Warning
}

func (v *validator) warn(kind, key, msg string) {
	w := Warning{Kind: kind, Key: key, Message: msg}
	v.warnings = append(v.warnings, w)
	slog.Warn(w.String())
}

func (v *validator) validateLevel(schema Schema, prefix string) error {
	names := map[string]string{}    // name/marker -> key, scoped to this level
	letters := map[rune]string{}    // cluster letter -> key, scoped to this level
	slotConventions := map[int]map[string]bool{} // name slot -> conventions, scoped to this level
	var positionalKey string

	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		fq := prefix + key

		if err := v.validateNames(opt, fq, names, slotConventions); err != nil {
			return err
		}
		if err := v.validateClusters(opt, fq, letters); err != nil {
			return err
		}
		if opt.Positional {
			if positionalKey != "" {
				return fmt.Errorf("%w: %s and %s", ErrDuplicatePositional, positionalKey, fq)
			}
			positionalKey = fq
		}
		if err := v.validateChoices(opt, fq); err != nil {
			return err
		}
		if err := v.validateParamCount(opt, fq); err != nil {
			return err
		}
		if err := v.validateInline(opt, fq); err != nil {
			return err
		}
		if err := v.validateArrayDefault(opt, fq); err != nil {
			return err
		}
		if err := v.validateRequiredExclusivity(opt, fq); err != nil {
			return err
		}
		if opt.Type.Variadic() && len(opt.Cluster) > 0 {
			v.warn(WarnVariadicCluster, fq, "a variadic option's cluster letter must be last in a cluster")
		}
	}

	for slot, conventions := range slotConventions {
		if len(conventions) > 1 {
			v.warn(WarnMixedNamingConvention, prefix, fmt.Sprintf("name slot %d mixes naming conventions", slot))
		}
	}

	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		fq := prefix + key
		if err := v.validateRequirement(opt.Requires, schema, fq); err != nil {
			return err
		}
		if err := v.validateRequirement(opt.RequiredIf, schema, fq); err != nil {
			return err
		}
	}

	v.checkSimilarity(schema, prefix)

	if !v.flags.NoRecurse {
		for _, key := range sortedKeys(schema) {
			opt := schema[key]
			if opt.Type != KindCommand {
				continue
			}
			if err := v.validateCommand(opt, prefix+key+"."); err != nil {
				return err
			}
		}
	}

	return nil
}

func (v *validator) validateCommand(opt *OptionDef, childPrefix string) error {
	nested, ptr, err := resolveOptions(opt.Options, v.flags.Resolver)
	if err != nil {
		return err
	}
	if nested == nil {
		return nil
	}
	if ptr != 0 {
		if v.visited[ptr] {
			return nil
		}
		v.visited[ptr] = true
	}
	return v.validateLevel(nested, childPrefix)
}

// resolveOptions resolves a command's Options field (inline Schema,
// OptionsProvider callback, or module specifier string) into a concrete
// Schema, along with an identity pointer used for the cycle guard.
func resolveOptions(options any, resolver ModuleResolver) (Schema, uintptr, error) {
	switch o := options.(type) {
	case nil:
		return nil, 0, nil
	case Schema:
		return o, schemaIdentity(o), nil
	case OptionsProvider:
		s, err := o()
		if err != nil {
			return nil, 0, err
		}
		return s, schemaIdentity(s), nil
	case func() (Schema, error):
		s, err := o()
		if err != nil {
			return nil, 0, err
		}
		return s, schemaIdentity(s), nil
	case string:
		if resolver == nil {
			return nil, 0, fmt.Errorf("%w: resolving module %q", ErrMissingResolveCallback, o)
		}
		s, err := resolver.ResolveSchema(o)
		if err != nil {
			return nil, 0, err
		}
		return s, schemaIdentity(s), nil
	default:
		return nil, 0, fmt.Errorf("command Options has unsupported type %T", options)
	}
}

func schemaIdentity(s Schema) uintptr {
	if s == nil {
		return 0
	}
	return reflect.ValueOf(s).Pointer()
}

func (v *validator) validateNames(opt *OptionDef, key string, names map[string]string, convSeen map[int]map[string]bool) error {
	for slot, n := range opt.Names {
		if n.Skip || n.Text == "" {
			continue
		}
		if strings.ContainsAny(n.Text, "= \t\n\r") {
			return fmt.Errorf("%w: option %s name %q", ErrInvalidName, key, n.Text)
		}
		if owner, dup := names[n.Text]; dup {
			return fmt.Errorf("%w: %q claimed by both %s and %s", ErrDuplicateName, n.Text, owner, key)
		}
		names[n.Text] = key

		if convSeen[slot] == nil {
			convSeen[slot] = map[string]bool{}
		}
		convSeen[slot][namingConvention(n.Text)] = true
	}

	if opt.TrailingMarker != "" {
		if strings.ContainsAny(opt.TrailingMarker, "= \t\n\r") {
			return fmt.Errorf("%w: option %s trailing marker %q", ErrInvalidName, key, opt.TrailingMarker)
		}
		if owner, dup := names[opt.TrailingMarker]; dup {
			return fmt.Errorf("%w: %q claimed by both %s and %s", ErrDuplicateName, opt.TrailingMarker, owner, key)
		}
		names[opt.TrailingMarker] = key
	}

	for _, src := range opt.Sources {
		if isEnvSource(src) {
			if owner, dup := names[src]; dup {
				return fmt.Errorf("%w: env source %q claimed by both %s and %s", ErrDuplicateName, src, owner, key)
			}
			names[src] = key
		}
	}

	return nil
}

// namingConvention classifies a name's casing and dash-prefix style, for the
// mixed-naming-convention warning.
func namingConvention(name string) string {
	dash := ""
	trimmed := name
	for strings.HasPrefix(trimmed, "-") {
		dash += "-"
		trimmed = trimmed[1:]
	}
	switch {
	case len(dash) >= 2:
		dash = "--"
	case len(dash) == 1:
		dash = "-"
	default:
		dash = ""
	}

	casing := "lower"
	hasUpper, hasLower := false, false
	for _, r := range trimmed {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsLower(r) {
			hasLower = true
		}
	}
	switch {
	case hasUpper && !hasLower:
		casing = "upper"
	case hasUpper && hasLower:
		if strings.ContainsAny(trimmed[:1], "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
			casing = "capitalized"
		} else {
			casing = "mixed"
		}
	}

	sep := "none"
	switch {
	case strings.Contains(trimmed, "-"):
		sep = "kebab"
	case strings.Contains(trimmed, "_"):
		sep = "snake"
	case strings.Contains(trimmed, ":"):
		sep = "colon"
	}

	return dash + "|" + casing + "|" + sep
}

func isEnvSource(src string) bool {
	return !strings.Contains(src, "://")
}

func (v *validator) validateClusters(opt *OptionDef, key string, letters map[rune]string) error {
	for _, l := range opt.Cluster {
		if unicode.IsSpace(l) || l == '=' {
			return fmt.Errorf("%w: option %s letter %q", ErrInvalidClusterLetter, key, l)
		}
		if owner, dup := letters[l]; dup {
			return fmt.Errorf("%w: %q claimed by both %s and %s", ErrDuplicateClusterLetter, l, owner, key)
		}
		letters[l] = key
	}
	return nil
}

func (v *validator) validateChoices(opt *OptionDef, key string) error {
	seen := map[string]bool{}
	for _, c := range opt.Choices {
		if seen[c] {
			return fmt.Errorf("%w: %q on option %s", ErrDuplicateChoice, c, key)
		}
		seen[c] = true
	}
	return nil
}

func (v *validator) validateParamCount(opt *OptionDef, key string) error {
	if opt.Type != KindFunction {
		return nil
	}
	if !opt.ParamCount.valid() {
		return fmt.Errorf("%w: option %s", ErrInvalidParamCount, key)
	}
	return nil
}

func (v *validator) validateInline(opt *OptionDef, key string) error {
	if opt.Inline != InlineRequired {
		return nil
	}
	variadicNoSeparator := opt.Type == KindArray && opt.Separator == "" && !opt.Append
	variadicUnbounded := opt.Type == KindFunction && (opt.ParamCount.Unlimited() || opt.ParamCount.Max > 1)
	if variadicNoSeparator || variadicUnbounded {
		return fmt.Errorf("%w: option %s cannot require inline values while variadic", ErrInvalidInlineConstraint, key)
	}
	return nil
}

func (v *validator) validateArrayDefault(opt *OptionDef, key string) error {
	if opt.Type != KindArray || opt.Default == nil {
		return nil
	}
	vals, ok := opt.Default.([]string)
	if !ok {
		return nil
	}
	if opt.Limit > 0 && len(vals) > opt.Limit {
		return fmt.Errorf("%w: option %s default exceeds limit %d", ErrLimitConstraintViolation, key, opt.Limit)
	}
	if opt.Unique {
		seen := map[string]bool{}
		for _, val := range vals {
			if seen[val] {
				return fmt.Errorf("%w: option %s default has duplicate %q", ErrLimitConstraintViolation, key, val)
			}
			seen[val] = true
		}
	}
	return nil
}

// validateRequiredExclusivity enforces spec §3's invariant that "required"
// excludes "default" and "required_if" on the same option: an option that
// is always required cannot also carry a fallback or a conditional
// requirement of its own. This is distinct from validateRequiredKey, which
// checks the option a *requirement expression points at, not the option's
// own fields.
func (v *validator) validateRequiredExclusivity(opt *OptionDef, key string) error {
	if !opt.Required {
		return nil
	}
	if opt.Default != nil {
		return fmt.Errorf("%w: option %s is required and cannot also set a default", ErrInvalidRequiredOption, key)
	}
	if opt.RequiredIf != nil {
		return fmt.Errorf("%w: option %s is required and cannot also set required_if", ErrInvalidRequiredOption, key)
	}
	return nil
}

func (v *validator) validateRequirement(expr RequireExpr, schema Schema, ownerKey string) error {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case KeyRef:
		return v.validateRequiredKey(string(e), nil, schema, ownerKey)
	case Entry:
		return v.validateRequiredKey(e.Key, e.Value, schema, ownerKey)
	case Not:
		return v.validateRequirement(e.Expr, schema, ownerKey)
	case AllOf:
		for _, sub := range e {
			if err := v.validateRequirement(sub, schema, ownerKey); err != nil {
				return err
			}
		}
	case OneOf:
		for _, sub := range e {
			if err := v.validateRequirement(sub, schema, ownerKey); err != nil {
				return err
			}
		}
	case Callback:
		// Nothing to statically validate about an opaque predicate.
	}
	return nil
}

func (v *validator) validateRequiredKey(key string, value any, schema Schema, ownerKey string) error {
	if key == ownerKey {
		return fmt.Errorf("%w: option %s", ErrSelfRequirement, ownerKey)
	}
	target, ok := schema[key]
	if !ok {
		return fmt.Errorf("%w: %s (required by %s)", ErrUnknownRequiredOption, key, ownerKey)
	}
	if target.Type.Message() {
		return fmt.Errorf("%w: %s is a message option (required by %s)", ErrInvalidRequiredOption, key, ownerKey)
	}
	if value != nil && value != Present {
		if target.Required {
			return fmt.Errorf("%w: %s is always required, cannot require a specific value (by %s)", ErrInvalidRequiredValue, key, ownerKey)
		}
		if target.Default != nil {
			return fmt.Errorf("%w: %s has a default, cannot require a specific value (by %s)", ErrInvalidRequiredValue, key, ownerKey)
		}
	}
	return nil
}

func (v *validator) checkSimilarity(schema Schema, prefix string) {
	if v.flags.SimilarityThreshold <= 0 {
		return
	}
	var allNames []string
	for _, opt := range schema {
		for _, n := range opt.Names {
			if !n.Skip && n.Text != "" {
				allNames = append(allNames, n.Text)
			}
		}
	}
	for i := 0; i < len(allNames); i++ {
		for j := i + 1; j < len(allNames); j++ {
			if gestaltRatio(allNames[i], allNames[j]) >= v.flags.SimilarityThreshold {
				v.warn(WarnSimilarNames, prefix, fmt.Sprintf("%q and %q are very similar", allNames[i], allNames[j]))
			}
		}
	}
}
