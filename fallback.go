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
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// runFallbacks resolves Default/Sources/Stdin for every key in schema that
// the command line left unspecified, at scope end (spec §4.7). Every key's
// resolution is independent of every other's, so the per-key work runs
// concurrently via an errgroup; the values map and specified set are guarded
// by a mutex since a DefaultFunc callback reads a snapshot of the values
// collected so far, including those of other keys that already resolved.
func runFallbacks(sc *scope, schema Schema) error {
	var mu sync.Mutex
	g := &errgroup.Group{}

	for _, key := range sortedKeys(schema) {
		key, opt := key, schema[key]
		if sc.specified[key] || opt.Type.Message() {
			continue
		}

		g.Go(func() error {
			v, ok, err := resolveFallback(sc, key, opt, &mu)
			if err != nil {
				return err
			}
			if !ok {
				return nil
			}
			mu.Lock()
			sc.values[key] = v
			sc.specified[key] = true
			mu.Unlock()
			return nil
		})
	}

	return g.Wait()
}

// resolveFallback implements spec §4.7's ordering: if Stdin is set and
// either the option is Required or stdin is not an interactive terminal,
// read stdin; otherwise try each Sources entry in turn; otherwise evaluate
// Default. Stdin/Sources values are routed through handleParams so they go
// through the same normalize/regex/choices/mapping/parse/unique/limit
// pipeline a CLI-supplied token would. Default is stored as-is (array kinds
// still get unique/limit, per spec), since it does not come from raw text.
// mu guards reads of sc.values, since DefaultFunc may run concurrently with
// other keys' resolution.
func resolveFallback(sc *scope, key string, opt *OptionDef, mu *sync.Mutex) (any, bool, error) {
	if opt.Stdin && (opt.Required || stdinIsNonInteractive()) {
		data, err := stdinReadOnce(sc)
		if err != nil {
			return nil, false, err
		}
		if data != nil {
			v, ok, err := invokeParamHandler(opt, key, string(data))
			if err != nil || !ok {
				return nil, ok, err
			}
			return v, true, nil
		}
	}

	for _, src := range opt.Sources {
		if strings.HasPrefix(src, "file://") {
			if sc.flags.Resolver == nil {
				continue
			}
			data, err := sc.flags.Resolver.ResolveFile(strings.TrimPrefix(src, "file://"))
			if err != nil {
				continue
			}
			v, ok, err := invokeParamHandler(opt, key, string(data))
			if err != nil || !ok {
				return nil, ok, err
			}
			return v, true, nil
		}
		if v, ok := os.LookupEnv(src); ok {
			rv, ok, err := invokeParamHandler(opt, key, v)
			if err != nil || !ok {
				return nil, ok, err
			}
			return rv, true, nil
		}
	}

	if opt.Default == nil {
		return nil, false, nil
	}

	var literal any
	if fn, ok := opt.Default.(DefaultFunc); ok {
		mu.Lock()
		snapshot := make(Values, len(sc.values))
		for k, v := range sc.values {
			snapshot[k] = v
		}
		mu.Unlock()
		v, err := fn(snapshot)
		if err != nil {
			return nil, false, err
		}
		literal = v
	} else {
		literal = opt.Default
	}

	if opt.Type == KindArray {
		return normalizeArrayDefault(opt, literal), true, nil
	}
	return literal, true, nil
}

// invokeParamHandler routes a Stdin- or Sources-resolved token through the
// same parameter handler a CLI-supplied token would use (spec §4.7 steps
// 1-2), against a scratch values map so the normal single/array storage
// convention (last-wins, or unique/limit/append) applies before the result
// is copied into the real scope.
func invokeParamHandler(opt *OptionDef, key, token string) (any, bool, error) {
	scratch := Values{}
	info := ParamInfo{Values: scratch, Name: key, Index: 0}
	if _, err := handleParams(opt, key, []string{token}, info, scratch, false); err != nil {
		return nil, false, err
	}
	return scratch[key], true, nil
}

// normalizeArrayDefault applies an array option's Unique/Limit constraints
// to a literal Default value, without running it through normalize, regex,
// choices, mapping or parse (spec §4.7 step 4: Default bypasses the full
// parameter-handler pipeline, unlike Stdin/Sources).
func normalizeArrayDefault(opt *OptionDef, literal any) any {
	var items []any
	switch v := literal.(type) {
	case []string:
		items = make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
	case []any:
		items = append(items, v...)
	default:
		return literal
	}

	if opt.Unique {
		items = dedupePreserveOrder(items)
	}
	if opt.Limit > 0 && len(items) > opt.Limit {
		items = items[:opt.Limit]
	}
	return items
}

// stdinIsNonInteractive reports whether os.Stdin is not attached to a
// terminal, so that reading it as a fallback source won't block on input
// the user never intended to pipe in (spec §4.7's stdin gate).
func stdinIsNonInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return true
	}
	return stat.Mode()&os.ModeCharDevice == 0
}

// readAllStdin reads os.Stdin to completion. Errors are left for the caller
// to decide whether they are fatal (stdinReadOnce in parse.go treats them as
// a soft failure, logging a warning and proceeding without stdin input).
func readAllStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}
