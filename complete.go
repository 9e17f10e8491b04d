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
	"sort"
	"strings"
)

// Complete is a convenience wrapper around Parse that requests completion
// candidates for the given character offset into the joined args, returning
// them directly instead of requiring the caller to unwrap a *Message.
func Complete(schema Schema, args []string, index int, opts ...func(*ParseFlags)) ([]string, error) {
	opts = append(opts, WithCompletionIndex(index))
	_, err := Parse(schema, args, opts...)
	if err == nil {
		return nil, nil
	}
	var msg *Message
	if !asMessage(err, &msg) || msg.Kind != MessageCompletion {
		return nil, err
	}
	if msg.Text == "" {
		return nil, nil
	}
	return strings.Split(msg.Text, "\n"), nil
}

func asMessage(err error, target **Message) bool {
	m, ok := err.(*Message)
	if !ok {
		return false
	}
	*target = m
	return true
}

// completionMessage builds the MessageCompletion response for the classifier
// entry at the completion cursor (spec §4.9): option names for a name
// position, an option's own Complete callback (or Choices) for a parameter
// position, and the registered names starting with the typed text for an
// unrecognized token (every name when nothing was typed).
func completionMessage(sc *scope, entry *parseEntry, tokens []string, i int) *Message {
	var candidates []string

	switch entry.kind {
	case clsOptionName, clsUnknown:
		prefix := entry.compPrefix
		if entry.kind == clsOptionName {
			prefix, _, _ = splitInline(stripSentinel(tokens[i]))
		}
		candidates = filterPrefix(sc.registry.Names(), prefix)

	case clsCluster:
		candidates = filterPrefix(sc.registry.Names(), sc.flags.ClusterPrefix)

	case clsParameter, clsPositional:
		body, _, _ := splitCompletion(tokens[i])
		if entry.opt != nil && entry.opt.Complete != nil {
			info := ParamInfo{Values: sc.values, Name: entry.key, Comp: true}
			if i > 0 {
				info.Prev = stripSentinel(tokens[i-1])
			}
			if cs, err := entry.opt.Complete(body, info); err == nil {
				candidates = cs
			}
		} else if entry.opt != nil && len(entry.opt.Choices) > 0 {
			candidates = filterPrefix(entry.opt.Choices, body)
		}
	}

	sort.Strings(candidates)
	return &Message{Kind: MessageCompletion, Text: strings.Join(candidates, "\n")}
}

func filterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		return append([]string{}, items...)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.HasPrefix(it, prefix) {
			out = append(out, it)
		}
	}
	return out
}
