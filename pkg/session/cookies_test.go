package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCookieHeader(t *testing.T) {
	t.Run("Single Pair", func(t *testing.T) {
		set := ParseCookieHeader("sid=abc123")

		require.Equal(t, 1, set.Len())
		val, ok := set.Get("sid")
		assert.True(t, ok)
		assert.Equal(t, "abc123", val)
		assert.Equal(t, map[string]string{"sid": "abc123"}, set.Map())
	})

	t.Run("Multiple Pairs Preserve Order", func(t *testing.T) {
		set := ParseCookieHeader("a=1; b=2; c=3")

		require.Equal(t, 3, set.Len())
		pairs := set.Pairs()
		assert.Equal(t, Pair{Name: "a", Value: "1"}, pairs[0])
		assert.Equal(t, Pair{Name: "b", Value: "2"}, pairs[1])
		assert.Equal(t, Pair{Name: "c", Value: "3"}, pairs[2])
	})

	t.Run("Duplicate Name Last Wins", func(t *testing.T) {
		set := ParseCookieHeader("sid=old; sid=new")

		val, ok := set.Get("sid")
		assert.True(t, ok)
		assert.Equal(t, "new", val)
		assert.Equal(t, "new", set.Map()["sid"])
	})

	t.Run("Empty Header", func(t *testing.T) {
		set := ParseCookieHeader("")

		assert.Equal(t, 0, set.Len())
		assert.Empty(t, set.Map())
	})

	t.Run("Garbage Degrades To Empty", func(t *testing.T) {
		// Parsing never fails; unparsable content means "no session presented".
		set := ParseCookieHeader(";;;===;;;")

		assert.Equal(t, 0, set.Len())
		assert.Empty(t, set.Map())
	})

	t.Run("Malformed Pairs Are Skipped", func(t *testing.T) {
		set := ParseCookieHeader("good=yes; =bad; also_good=1")

		m := set.Map()
		assert.Equal(t, "yes", m["good"])
		assert.Equal(t, "1", m["also_good"])
	})

	t.Run("Missing Name Lookup", func(t *testing.T) {
		set := ParseCookieHeader("sid=abc")

		_, ok := set.Get("other")
		assert.False(t, ok)
	})

	t.Run("Map Is A Copy", func(t *testing.T) {
		set := ParseCookieHeader("sid=abc")

		m := set.Map()
		m["sid"] = "mutated"

		val, _ := set.Get("sid")
		assert.Equal(t, "abc", val)
	})
}
