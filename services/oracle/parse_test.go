package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTitleDetails(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		d, err := ParseTitleDetails(`{
			"title": "Heat",
			"description": "A crew of thieves and an obsessive detective.",
			"posterUrl": "https://example.com/heat.jpg",
			"trailerUrl": "https://youtube.com/watch?v=abc",
			"rating": 8.3,
			"year": 1995,
			"genres": ["Crime", "Drama", "Thriller"]
		}`)
		require.NoError(t, err)
		assert.Equal(t, "Heat", d.Title)
		require.NotNil(t, d.Rating)
		assert.Equal(t, 8.3, *d.Rating)
		require.NotNil(t, d.Year)
		assert.Equal(t, int16(1995), *d.Year)
		assert.Equal(t, []string{"Crime", "Drama", "Thriller"}, d.Genres)
	})

	t.Run("code fences stripped", func(t *testing.T) {
		d, err := ParseTitleDetails("```json\n{\"title\": \"Heat\"}\n```")
		require.NoError(t, err)
		assert.Equal(t, "Heat", d.Title)
	})

	t.Run("genres capped at three", func(t *testing.T) {
		d, err := ParseTitleDetails(`{"genres": ["A", "B", "C", "D"]}`)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, d.Genres)
	})

	t.Run("out-of-range rating dropped", func(t *testing.T) {
		d, err := ParseTitleDetails(`{"rating": 95}`)
		require.NoError(t, err)
		assert.Nil(t, d.Rating)
	})

	t.Run("empty fields are fine", func(t *testing.T) {
		d, err := ParseTitleDetails(`{}`)
		require.NoError(t, err)
		assert.Empty(t, d.Title)
		assert.Nil(t, d.Rating)
		assert.Nil(t, d.Year)
	})

	t.Run("non-json fails", func(t *testing.T) {
		_, err := ParseTitleDetails("I could not find that movie.")
		assert.Error(t, err)
	})
}

func TestParseTitleMatches(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		m, err := ParseTitleMatches(`{"results": [
			{"title": "Dune", "year": 2021},
			{"title": "Dune: Part Two", "year": 2024}
		]}`)
		require.NoError(t, err)
		require.Len(t, m, 2)
		assert.Equal(t, "Dune", m[0].Title)
		require.NotNil(t, m[0].Year)
		assert.Equal(t, int16(2021), *m[0].Year)
	})

	t.Run("code fences stripped", func(t *testing.T) {
		m, err := ParseTitleMatches("```json\n{\"results\": [{\"title\": \"Dune\"}]}\n```")
		require.NoError(t, err)
		require.Len(t, m, 1)
		assert.Nil(t, m[0].Year)
	})

	t.Run("capped at five", func(t *testing.T) {
		m, err := ParseTitleMatches(`{"results": [
			{"title": "A"}, {"title": "B"}, {"title": "C"},
			{"title": "D"}, {"title": "E"}, {"title": "F"}
		]}`)
		require.NoError(t, err)
		assert.Len(t, m, 5)
	})

	t.Run("untitled and absurd-year matches cleaned", func(t *testing.T) {
		m, err := ParseTitleMatches(`{"results": [
			{"title": "  "},
			{"title": "Dune", "year": -5}
		]}`)
		require.NoError(t, err)
		require.Len(t, m, 1)
		assert.Equal(t, "Dune", m[0].Title)
		assert.Nil(t, m[0].Year)
	})

	t.Run("no matches", func(t *testing.T) {
		m, err := ParseTitleMatches(`{"results": []}`)
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("non-json fails", func(t *testing.T) {
		_, err := ParseTitleMatches("no idea")
		assert.Error(t, err)
	})
}

func TestParseTrailerURL(t *testing.T) {
	u, err := ParseTrailerURL(`{"trailerUrl": "https://youtube.com/watch?v=abc"}`)
	require.NoError(t, err)
	assert.Equal(t, "https://youtube.com/watch?v=abc", u)

	u, err = ParseTrailerURL(`{"trailerUrl": ""}`)
	require.NoError(t, err)
	assert.Empty(t, u)
}
