package local

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gitee.com/flycash/shift-handover/internal/repository/cache"
	ca "github.com/patrickmn/go-cache"
)

var _ cache.Backend = (*Cache)(nil)

// Cache is an in-process backend for single-instance deployments and tests.
type Cache struct {
	c *ca.Cache
}

func NewCache(c *ca.Cache) *Cache {
	return &Cache{c: c}
}

// NewDefaultCache sweeps expired keys every minute.
func NewDefaultCache() *Cache {
	return NewCache(ca.New(cache.DashboardTTL, time.Minute))
}

func (l *Cache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := l.c.Get(key)
	if !ok {
		return nil, cache.ErrKeyNotFound
	}
	return v.([]byte), nil
}

func (l *Cache) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = ca.NoExpiration
	}
	// copy so later writes to the caller's slice do not leak in
	l.c.Set(key, append([]byte(nil), val...), ttl)
	return nil
}

func (l *Cache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		l.c.Delete(k)
	}
	return nil
}

// DeleteMatching follows redis MATCH globs: '*', '?', '[...]' classes with
// '^' negation and 'a-z' ranges, and '\' escapes.
func (l *Cache) DeleteMatching(_ context.Context, pattern string) (int, error) {
	re, err := globToRegexp(pattern)
	if err != nil {
		return 0, err
	}
	removed := 0
	for key := range l.c.Items() {
		if re.MatchString(key) {
			l.c.Delete(key)
			removed++
		}
	}
	return removed, nil
}

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	rs := []rune(pattern)
	var b strings.Builder
	b.WriteString("(?s)^")
	for i := 0; i < len(rs); i++ {
		switch rs[i] {
		case '*':
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '\\':
			// a trailing '\' matches itself
			if i+1 < len(rs) {
				i++
			}
			b.WriteString(regexp.QuoteMeta(string(rs[i])))
		case '[':
			var class string
			class, i = globClass(rs, i+1)
			b.WriteString(class)
		default:
			b.WriteString(regexp.QuoteMeta(string(rs[i])))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// globClass translates the class starting at rs[i] and returns the index of
// its closing ']'. An unclosed class runs to the end of the pattern.
func globClass(rs []rune, i int) (string, int) {
	negate := false
	if i < len(rs) && rs[i] == '^' {
		negate = true
		i++
	}
	var body strings.Builder
	for ; i < len(rs); i++ {
		switch r := rs[i]; {
		case r == '\\' && i+1 < len(rs):
			i++
			body.WriteString(classRune(rs[i]))
		case r == ']':
			return wrapClass(body.String(), negate), i
		case i+2 < len(rs) && rs[i+1] == '-':
			lo, hi := r, rs[i+2]
			if lo > hi {
				lo, hi = hi, lo
			}
			body.WriteString(classRune(lo) + "-" + classRune(hi))
			i += 2
		default:
			body.WriteString(classRune(r))
		}
	}
	return wrapClass(body.String(), negate), len(rs) - 1
}

func classRune(r rune) string {
	return fmt.Sprintf(`\x{%x}`, r)
}

func wrapClass(body string, negate bool) string {
	switch {
	case body == "" && negate:
		return "."
	case body == "":
		// "[]" matches nothing
		return `[^\x00-\x{10ffff}]`
	case negate:
		return "[^" + body + "]"
	default:
		return "[" + body + "]"
	}
}
