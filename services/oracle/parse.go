package oracle

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

const (
	maxGenres        = 3
	maxSearchResults = 5
)

// ParseTitleDetails decodes the model's JSON answer, tolerating markdown code
// fences and clamping out-of-range values. The model is unreliable; anything
// unusable degrades to an empty field rather than an error.
func ParseTitleDetails(text string) (*TitleDetails, error) {
	var d TitleDetails
	if err := json.Unmarshal([]byte(stripFences(text)), &d); err != nil {
		return nil, errors.Wrap(err, "failed to decode oracle response")
	}
	if d.Rating != nil && (*d.Rating < 0 || *d.Rating > 10) {
		d.Rating = nil
	}
	if d.Year != nil && *d.Year <= 0 {
		d.Year = nil
	}
	var genres []string
	for _, g := range d.Genres {
		g = strings.TrimSpace(g)
		if g == "" {
			continue
		}
		genres = append(genres, g)
		if len(genres) == maxGenres {
			break
		}
	}
	d.Genres = genres
	return &d, nil
}

// ParseTitleMatches decodes a search answer. Matches without a title and
// matches past the result cap are dropped; a missing or absurd year is kept
// as unknown.
func ParseTitleMatches(text string) ([]TitleMatch, error) {
	var out struct {
		Results []TitleMatch `json:"results"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return nil, errors.Wrap(err, "failed to decode oracle response")
	}
	var matches []TitleMatch
	for _, m := range out.Results {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			continue
		}
		if m.Year != nil && *m.Year <= 0 {
			m.Year = nil
		}
		matches = append(matches, m)
		if len(matches) == maxSearchResults {
			break
		}
	}
	return matches, nil
}

func ParseTrailerURL(text string) (string, error) {
	var out struct {
		TrailerURL string `json:"trailerUrl"`
	}
	if err := json.Unmarshal([]byte(stripFences(text)), &out); err != nil {
		return "", errors.Wrap(err, "failed to decode oracle response")
	}
	return out.TrailerURL, nil
}

// stripFences removes a surrounding ```json ... ``` block if the model added
// one despite the JSON response mime type.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
