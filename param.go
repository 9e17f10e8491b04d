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
	"regexp"
	"slices"
	"strings"
)

// handleParams implements spec §4.5 for a non-niladic option, given the raw
// parameter tokens collected for one occurrence. comp suppresses constraint
// violations (the caller is after completion candidates, not a valid parse).
// It returns the number of additional following arguments the option's
// function callback requested be skipped (spec §9's skip-count open
// question), always 0 for non-function kinds.
func handleParams(opt *OptionDef, key string, params []string, info ParamInfo, values Values, comp bool) (int, error) {
	effective := params
	if opt.Type == KindArray && opt.Separator != "" {
		effective = splitBySeparator(params, opt.Separator)
	}

	if opt.Type == KindFunction {
		var result any = effective
		skip := 0
		if opt.Parse != nil {
			info.SkipCount = &skip
			v, err := opt.Parse(effective, info)
			if err != nil {
				if comp {
					return 0, nil
				}
				return 0, err
			}
			result = v
		}
		values[key] = result
		if skip < 0 {
			skip = 0
		}
		return skip, nil
	}

	mapped := make([]any, len(effective))
	for i, p := range effective {
		if opt.Normalize != nil {
			p = opt.Normalize(p)
		}

		if opt.Regex != nil && !opt.Regex.MatchString(p) {
			if comp {
				continue
			}
			return 0, &ParseError{Kind: ErrRegexConstraintViolation, Key: key, Text: p}
		}
		if len(opt.Choices) > 0 && !slices.Contains(opt.Choices, p) {
			if comp {
				continue
			}
			return 0, &ParseError{Kind: ErrChoiceConstraintViolation, Key: key, Text: p}
		}

		var v any = p
		if opt.Mapping != nil {
			if mv, ok := opt.Mapping[p]; ok {
				v = mv
			} else if opt.Parse != nil {
				pv, err := opt.Parse([]string{p}, info)
				if err != nil {
					if comp {
						continue
					}
					return 0, err
				}
				v = pv
			}
		} else if opt.Parse != nil {
			pv, err := opt.Parse([]string{p}, info)
			if err != nil {
				if comp {
					continue
				}
				return 0, err
			}
			v = pv
		}
		mapped[i] = v
	}

	switch opt.Type {
	case KindSingle:
		if len(mapped) > 0 {
			values[key] = mapped[len(mapped)-1]
		}
	case KindArray:
		return 0, storeArray(opt, key, mapped, values, comp)
	}
	return 0, nil
}

func storeArray(opt *OptionDef, key string, mapped []any, values Values, comp bool) error {
	var current []any
	if opt.Append {
		if existing, ok := values[key].([]any); ok {
			current = append(current, existing...)
		}
	}
	current = append(current, mapped...)

	if opt.Unique {
		current = dedupePreserveOrder(current)
	}
	if opt.Limit > 0 && len(current) > opt.Limit {
		if comp {
			current = current[:opt.Limit]
		} else {
			return &ParseError{Kind: ErrLimitConstraintViolation, Key: key}
		}
	}
	values[key] = current
	return nil
}

func dedupePreserveOrder(items []any) []any {
	seen := make([]any, 0, len(items))
	for _, it := range items {
		dup := false
		for _, s := range seen {
			if deepEqual(it, s) {
				dup = true
				break
			}
		}
		if !dup {
			seen = append(seen, it)
		}
	}
	return seen
}

// splitBySeparator splits every element of params by sep, which is treated
// as a regular expression if it is delimited with slashes ("/.../"),
// otherwise as a literal string.
func splitBySeparator(params []string, sep string) []string {
	var re *regexp.Regexp
	literal := sep
	if len(sep) >= 2 && sep[0] == '/' && sep[len(sep)-1] == '/' {
		if compiled, err := regexp.Compile(sep[1 : len(sep)-1]); err == nil {
			re = compiled
		}
	}

	var out []string
	for _, p := range params {
		var parts []string
		if re != nil {
			parts = re.Split(p, -1)
		} else {
			parts = strings.Split(p, literal)
		}
		out = append(out, parts...)
	}
	return out
}
