package regex

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

const matchTimeout = time.Second

var (
	// Matches: RegexMatch("pattern"), RegexMatchAny("pattern1, pattern2"), RegexMatchAll("pattern1, pattern2")
	funcPattern = regexp2.MustCompile(`RegexMatch(?:Any|All)?\("([^"\\]*(?:\\.[^"\\]*)*)"\)`, regexp2.None)
)

func Compile(pattern string) (*Pattern, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout

	return &Pattern{
		Expression: re,
	}, nil
}

// CompileList compiles a comma separated list of patterns.
func CompileList(patterns string) ([]*Pattern, error) {
	var out []*Pattern
	for _, p := range strings.Split(patterns, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}

		compiled, err := Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, compiled)
	}

	return out, nil
}

func ValidatePatterns(patterns []string) error {
	for _, pattern := range patterns {
		if _, err := Compile(pattern); err != nil {
			return fmt.Errorf("%q: %w", pattern, err)
		}
	}
	return nil
}

// PatternsFromExpression extracts the patterns passed to the RegexMatch helpers of a filter expression.
func PatternsFromExpression(expression string) ([]string, error) {
	var patterns []string

	match, err := funcPattern.FindStringMatch(expression)
	for match != nil && err == nil {
		// group 1 contains the pattern(s)
		for _, p := range strings.Split(match.GroupByNumber(1).String(), ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}

		match, err = funcPattern.FindNextMatch(match)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid regex function: %w", err)
	}

	return patterns, nil
}
