// Package filters selects posts that mention the tracked topic.
//
// Patterns are compiled with regexp2 so that \b honors Unicode word
// characters; the standard regexp package treats Cyrillic letters as
// non-word characters and would never match the Russian or Ukrainian forms.
package filters

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"

	"github.com/teleflash/teleflash/internal/core/domain"
)

const matchTimeout = time.Second

// FinlandPatterns are the English, Russian and Ukrainian forms of
// "Finland" and "Finnish", in evaluation order.
var FinlandPatterns = []string{
	`\bFinland(?:ic|ian)?\b`,
	`\bFinn(?:ish)?\b`,
	`\bФинлянд(?:(?:ия|ии|ие|ию|ией|ий))?\b`,
	`\bфин(?:ский|ская|ское|ские|ского|скому|ским|ской|ских|скими)?\b`,
	`\bФінлянді(?:(?:я|ї|ю|єю|їй))?\b`,
	`\bфін(?:ський|ська|ське|ські|ського|ському|ським|ською|ських|ськими)?\b`,
}

// Filter matches text against an ordered set of case-insensitive patterns.
type Filter struct {
	patterns []*regexp2.Regexp
}

// New compiles patterns case-insensitively.
func New(patterns ...string) (*Filter, error) {
	compiled := make([]*regexp2.Regexp, 0, len(patterns))

	for _, p := range patterns {
		re, err := regexp2.Compile(p, regexp2.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}

		re.MatchTimeout = matchTimeout
		compiled = append(compiled, re)
	}

	return &Filter{patterns: compiled}, nil
}

// Default returns the Finland filter.
func Default() *Filter {
	f, err := New(FinlandPatterns...)
	if err != nil {
		panic(err)
	}

	return f
}

// Match reports whether any pattern occurs in text. Empty text never matches.
func (f *Filter) Match(text string) bool {
	if text == "" {
		return false
	}

	for _, re := range f.patterns {
		// A timeout is reported as an error; treat it as no match.
		if ok, err := re.MatchString(text); err == nil && ok {
			return true
		}
	}

	return false
}

// Apply keeps the posts whose body matches, preserving order.
func (f *Filter) Apply(posts []domain.RecentPost) []domain.RecentPost {
	out := make([]domain.RecentPost, 0, len(posts))

	for _, p := range posts {
		if f.Match(p.Body) {
			out = append(out, p)
		}
	}

	return out
}
