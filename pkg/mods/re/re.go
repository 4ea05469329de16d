// Package re exposes Go's regular expression engine as a Zem Lisp module.
// Patterns use RE2 syntax and are compiled on every call.
package re

import "regexp"

// Fns are the functions of the re: module.
var Fns = map[string]any{
	"find":     find,
	"find-all": findAll,
	"match":    regexp.MatchString,
	"quote":    regexp.QuoteMeta,
	"replace":  replace,
	"split":    split,
}

// find returns the leftmost match of pattern in source, or an empty string
// if there is no match.
func find(pattern, source string) (string, error) {
	p, err := regexp.Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.FindString(source), nil
}

func findAll(pattern, source string) ([]string, error) {
	p, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.FindAllString(source, -1), nil
}

// replace replaces all matches of pattern in source with repl. Inside repl,
// $1 style references expand to capture groups.
func replace(pattern, repl, source string) (string, error) {
	p, err := regexp.Compile(pattern)
	if err != nil {
		return "", err
	}
	return p.ReplaceAllString(source, repl), nil
}

func split(pattern, source string) ([]string, error) {
	p, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return p.Split(source, -1), nil
}
