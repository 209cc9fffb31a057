package local

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitee.com/flycash/shift-handover/internal/repository/cache"
)

func TestCache_DeleteMatching(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	testCases := []struct {
		name        string
		keys        []string
		pattern     string
		wantRemoved int
		wantLeft    []string
	}{
		{
			name:        "one user dashboard",
			keys:        []string{"dashboard:42:true:UTI", "dashboard:42:false:", "dashboard:7:false:UTI", "listing:42:20"},
			pattern:     "dashboard:42:*",
			wantRemoved: 2,
			wantLeft:    []string{"dashboard:7:false:UTI", "listing:42:20"},
		},
		{
			name:        "unit with slash",
			keys:        []string{"dashboard:42:true:UTI/2"},
			pattern:     "dashboard:42:*",
			wantRemoved: 1,
		},
		{
			name:        "prefix is not a match",
			keys:        []string{"dashboard:420:true:x"},
			pattern:     "dashboard:42:*",
			wantRemoved: 0,
			wantLeft:    []string{"dashboard:420:true:x"},
		},
		{
			name:        "single char wildcard",
			keys:        []string{"listing:1:5", "listing:1:50"},
			pattern:     "listing:1:?",
			wantRemoved: 1,
			wantLeft:    []string{"listing:1:50"},
		},
		{
			name:        "regexp meta characters are literal",
			keys:        []string{"report:a.b:1", "report:axb:1"},
			pattern:     "report:a.b:*",
			wantRemoved: 1,
			wantLeft:    []string{"report:axb:1"},
		},
		{
			name:        "character class",
			keys:        []string{"dashboard:1:true:", "dashboard:2:true:", "dashboard:3:true:"},
			pattern:     "dashboard:[12]:*",
			wantRemoved: 2,
			wantLeft:    []string{"dashboard:3:true:"},
		},
		{
			name:        "negated range",
			keys:        []string{"listing:a:1", "listing:7:1", "listing:z:1"},
			pattern:     "listing:[^a-f]:1",
			wantRemoved: 2,
			wantLeft:    []string{"listing:a:1"},
		},
		{
			name:        "reversed range",
			keys:        []string{"listing:c:1", "listing:x:1"},
			pattern:     "listing:[f-a]:1",
			wantRemoved: 1,
			wantLeft:    []string{"listing:x:1"},
		},
		{
			name:        "escaped wildcards are literal",
			keys:        []string{"report:*:1", "report:ab:1", "report:?:2", "report:x:2"},
			pattern:     `report:\*:1`,
			wantRemoved: 1,
			wantLeft:    []string{"report:ab:1", "report:?:2", "report:x:2"},
		},
		{
			name:        "escaped bracket inside class",
			keys:        []string{"report:]:1", "report:a:1"},
			pattern:     `report:[\]b]:1`,
			wantRemoved: 1,
			wantLeft:    []string{"report:a:1"},
		},
		{
			name:        "empty class matches nothing",
			keys:        []string{"report:x:1"},
			pattern:     "report:[]:1",
			wantRemoved: 0,
			wantLeft:    []string{"report:x:1"},
		},
		{
			name:        "unclosed class runs to the end",
			keys:        []string{"listing:b", "listing:z"},
			pattern:     "listing:[abc",
			wantRemoved: 1,
			wantLeft:    []string{"listing:z"},
		},
		{
			name:        "trailing backslash is literal",
			keys:        []string{`path\`, "path"},
			pattern:     `path\`,
			wantRemoved: 1,
			wantLeft:    []string{"path"},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := NewDefaultCache()
			for _, k := range tc.keys {
				require.NoError(t, c.Set(ctx, k, []byte(`1`), time.Minute))
			}
			removed, err := c.DeleteMatching(ctx, tc.pattern)
			require.NoError(t, err)
			assert.Equal(t, tc.wantRemoved, removed)
			for _, k := range tc.wantLeft {
				_, err := c.Get(ctx, k)
				assert.NoError(t, err, k)
			}
		})
	}
}

func TestCache_GetSetDelete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewDefaultCache()
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)

	val := []byte(`{"a":1}`)
	require.NoError(t, c.Set(ctx, "k", val, time.Minute))
	val[0] = 'x'
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	c := NewDefaultCache()
	require.NoError(t, c.Set(ctx, "short", []byte(`1`), 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)
	_, err := c.Get(ctx, "short")
	assert.ErrorIs(t, err, cache.ErrKeyNotFound)
}
