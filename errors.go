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
	"errors"
	"strings"
)

// Schema errors (spec §7, "schema").
var (
	ErrInvalidName            = errors.New("invalid name")
	ErrDuplicateName          = errors.New("duplicate name")
	ErrInvalidClusterLetter   = errors.New("invalid cluster letter")
	ErrDuplicateClusterLetter = errors.New("duplicate cluster letter")
	ErrSelfRequirement        = errors.New("self requirement")
	ErrUnknownRequiredOption  = errors.New("unknown required option")
	ErrInvalidRequiredOption  = errors.New("invalid required option")
	ErrInvalidRequiredValue   = errors.New("invalid required value")
	ErrDuplicatePositional    = errors.New("duplicate positional option")
	ErrDuplicateChoice        = errors.New("duplicate choice value")
	ErrInvalidParamCount      = errors.New("invalid parameter count")
	ErrInvalidInlineConstraint = errors.New("invalid inline constraint")
)

// Parsing errors -- user error (spec §7, "parsing").
var (
	ErrUnknownOption              = errors.New("unknown option")
	ErrMissingParameter            = errors.New("missing parameter")
	ErrDisallowedInlineParameter    = errors.New("disallowed inline parameter")
	ErrMissingInlineParameter       = errors.New("missing inline parameter")
	ErrInvalidClusterOption         = errors.New("invalid cluster option")
	ErrMissingRequiredOption        = errors.New("missing required option")
	ErrUnsatisfiedRequirement       = errors.New("unsatisfied requirement")
	ErrUnsatisfiedConditional       = errors.New("unsatisfied conditional requirement")
	ErrRegexConstraintViolation     = errors.New("regex constraint violation")
	ErrChoiceConstraintViolation    = errors.New("choice constraint violation")
	ErrLimitConstraintViolation     = errors.New("limit constraint violation")
)

// Environment/resolution errors (spec §7).
var (
	ErrMissingResolveCallback = errors.New("missing resolve callback")
	ErrVersionFileNotFound    = errors.New("version file not found")
)

// Warning kinds (spec §7, collected, never fatal).
const (
	WarnDeprecatedOption     = "deprecated option used"
	WarnMixedNamingConvention = "mixed naming convention"
	WarnSimilarNames         = "too-similar names"
	WarnVariadicCluster      = "variadic with cluster letter"
)

// Warning is a single non-fatal diagnostic collected during validation or
// parsing.
type Warning struct {
	Kind    string
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key == "" {
		return w.Kind + ": " + w.Message
	}
	return w.Kind + " (" + w.Key + "): " + w.Message
}

// MessageKind distinguishes the three control-flow messages that terminate
// parsing without being failures.
type MessageKind string

const (
	MessageHelp       MessageKind = "help"
	MessageVersion    MessageKind = "version"
	MessageCompletion MessageKind = "completion"
)

// Message is raised (as an error) to terminate parsing with user-visible
// output, per spec §7's "control-flow messages (not failures)". Callers
// distinguish it from real failures with errors.As.
type Message struct {
	Kind MessageKind
	Text string
}

func (m *Message) Error() string { return m.Text }

// ParseError wraps a sentinel error kind with positional/contextual detail.
type ParseError struct {
	Kind  error
	Key   string
	Index int
	Text  string
	// Suggestions holds "did you mean" candidates for ErrUnknownOption,
	// computed by Gestalt similarity above a configured threshold (spec §7).
	Suggestions []string
}

func (e *ParseError) Error() string {
	msg := e.Kind.Error()
	if e.Text != "" {
		msg += ": " + e.Text
	}
	if len(e.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(e.Suggestions, ", ") + "?)"
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Kind }
