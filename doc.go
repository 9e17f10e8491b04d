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

/*
Package tsargp implements a declarative command-line argument parser and
help/usage formatter.

A consumer describes a program's options as a [Schema], a mapping from an
option key to an [OptionDef]. The package then:

  - validates the schema with [Validate];
  - parses an argument sequence (or a raw command line string) into a typed
    [Values] map with [Parse] or [ParseInto];
  - renders help and usage text from the same schema with [Format].

# Option kinds

Every option has a [Kind]: help, version, command, flag, single, array, or
function. Help, version, command and flag are niladic: they consume no
parameters. Single, array and function consume one or more parameters and
support constraints (regex, choices, mapping), transforms (normalize, parse)
and, for array, accumulation policies (unique, limit, append).

# Requirements

Options may declare Requires and RequiredIf expressions built from key
references, All/One/Not combinators, and callbacks. See [RequireExpr] for the
evaluation semantics.

# Clusters and positional arguments

Options may expose single-character names for combination into getopt-style
clusters (e.g. "-fv" for two flags "-f" and "-v"), and at most one option per
schema level may accept bare positional arguments. Any number of options may
instead declare a distinct TrailingMarker, each routing the remainder of the
argument list to its own key. An option with Break set ends parsing as soon
as it is handled, running fallback resolution and requirement checks before
returning.

# Completion

Callers may request word completion by setting CompletionIndex in
[ParseFlags]. Parsing then raises a [Message] carrying the candidate word
list instead of returning values.

# Concurrency

Parse callbacks for command-line arguments run synchronously from the
caller's goroutine, in argument order. At the end of each parsing scope,
stdin, source and default resolution for every key that was not specified on
the command line runs concurrently, one goroutine per key (see runFallbacks
in fallback.go), so default callbacks that perform visible side effects must
tolerate running alongside their peers. Requirement checks, including
Requires/RequiredIf callbacks, then run sequentially on the caller's
goroutine in key order; they are not evaluated concurrently.
*/
package tsargp
