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
	"fmt"
	"strings"
)

// handleFlag implements the "flag" niladic kind (spec §4.6): call Parse (if
// any) with an empty parameter, defaulting to boolean true.
func handleFlag(opt *OptionDef, key string, info ParamInfo, values Values) error {
	if opt.Parse != nil {
		v, err := opt.Parse(nil, info)
		if err != nil {
			return err
		}
		values[key] = v
		return nil
	}
	values[key] = true
	return nil
}

// handleCommand implements the "command" niladic kind: resolve the nested
// schema, recursively parse the remainder in a fresh scope, then call the
// command's Parse (if any) with the inner values.
func handleCommand(sc *scope, opt *OptionDef, key, matchedName string, rest []string) (int, error) {
	nested, _, err := resolveOptions(opt.Options, sc.flags.Resolver)
	if err != nil {
		return 0, err
	}

	childFlags := *sc.flags
	if opt.ClusterPrefix != "" {
		childFlags.ClusterPrefix = opt.ClusterPrefix
	}
	if opt.OptionPrefix != "" {
		childFlags.OptionPrefix = opt.OptionPrefix
	}
	childFlags.ProgramName = strings.TrimSpace(sc.flags.ProgramName + " " + matchedName)

	child := &scope{
		flags:     &childFlags,
		warnings:  sc.warnings,
		stdinRead: sc.stdinRead,
	}
	child.values = Values{}
	child.specified = specifiedSet{}
	child.registry = BuildRegistry(nested)

	consumed, err := child.run(rest)
	if err != nil {
		return consumed, err
	}
	if err := runFallbacks(child, nested); err != nil {
		return consumed, err
	}
	if err := checkRequirements(child, nested); err != nil {
		return consumed, err
	}

	var result any = child.values
	if opt.Parse != nil {
		info := ParamInfo{Values: child.values, Name: matchedName}
		v, perr := opt.Parse(nil, info)
		if perr == nil && v != nil {
			result = v
		} else if perr != nil {
			return consumed, perr
		}
	}
	sc.values[key] = result
	return consumed, nil
}

// handleVersion implements the "version" niladic kind.
func handleVersion(sc *scope, opt *OptionDef) (*Message, error) {
	if !strings.HasSuffix(opt.Version, ".json") {
		return &Message{Kind: MessageVersion, Text: opt.Version}, nil
	}
	if sc.flags.Resolver == nil {
		return nil, fmt.Errorf("%w: resolving version file %q", ErrMissingResolveCallback, opt.Version)
	}
	data, err := sc.flags.Resolver.ResolveFile(opt.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrVersionFileNotFound, opt.Version, err)
	}
	var doc struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrVersionFileNotFound, opt.Version, err)
	}
	return &Message{Kind: MessageVersion, Text: doc.Version}, nil
}

// handleHelp implements the "help" niladic kind, optionally navigating into
// a subcommand schema (UseCommand) and filtering displayed options
// (UseFilter) from the remaining arguments.
func handleHelp(sc *scope, schema Schema, opt *OptionDef, rest []string) (*Message, int, error) {
	target := schema
	consumed := 0
	programName := sc.flags.ProgramName

	if opt.UseCommand && len(rest) > 0 {
		if cmdKey, cmdOpt, ok := findSubcommandByName(schema, rest[0]); ok {
			nested, _, err := resolveOptions(cmdOpt.Options, sc.flags.Resolver)
			if err == nil && nested != nil {
				target = nested
				programName = strings.TrimSpace(programName + " " + rest[0])
				consumed = 1
				_ = cmdKey
			}
		}
	}

	var filter []string
	if opt.UseFilter && len(rest) > consumed {
		filter = rest[consumed:]
		consumed = len(rest)
	}

	text := Format(target, WithFormatProgramName(programName), WithFormatFilter(filter...))
	return &Message{Kind: MessageHelp, Text: text}, consumed, nil
}

func findSubcommandByName(schema Schema, name string) (string, *OptionDef, bool) {
	for _, key := range sortedKeys(schema) {
		opt := schema[key]
		if opt.Type != KindCommand {
			continue
		}
		for _, n := range opt.Names {
			if !n.Skip && n.Text == name {
				return key, opt, true
			}
		}
		if opt.PreferredName == name {
			return key, opt, true
		}
	}
	return "", nil, false
}
