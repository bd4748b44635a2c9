package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_IsCanonical(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := New()
		n, err := Normalize(v)
		require.NoError(t, err)
		assert.Equal(t, v, n)
		assert.False(t, seen[v])
		seen[v] = true
	}
}

func TestNormalize(t *testing.T) {
	n, err := Normalize(" 6BA7B810-9DAD-11D1-80B4-00C04FD430C8 ")
	require.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", n)

	_, err = Normalize("42")
	assert.Error(t, err)
}

func FuzzNormalize(f *testing.F) {
	f.Add("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	f.Add("")
	f.Add("not-a-uuid")

	f.Fuzz(func(t *testing.T, s string) {
		n, err := Normalize(s)
		if err != nil {
			return
		}
		again, err := Normalize(n)
		if err != nil || again != n {
			t.Fatalf("normalize not idempotent: %q -> %q -> %q (%v)", s, n, again, err)
		}
	})
}
