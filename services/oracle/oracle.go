package oracle

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"google.golang.org/genai"

	"github.com/watchdeck/web-ui/models"
)

const (
	geminiAPIKeyFlag = "gemini-api-key"
	geminiModelFlag  = "gemini-model"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   geminiAPIKeyFlag,
			Usage:  "gemini api key",
			Value:  "",
			EnvVar: "GEMINI_API_KEY",
		},
		cli.StringFlag{
			Name:   geminiModelFlag,
			Usage:  "gemini model",
			Value:  "gemini-2.0-flash",
			EnvVar: "GEMINI_MODEL",
		},
	)
}

// Oracle asks a generative model for best-effort title metadata. Results are
// advisory: they populate forms for human review and are never a source of
// truth.
type Oracle struct {
	cl    *genai.Client
	model string
}

func New(c *cli.Context) *Oracle {
	key := c.String(geminiAPIKeyFlag)
	if key == "" {
		return nil
	}
	cl, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: key,
	})
	if err != nil {
		log.WithError(err).Error("failed to create genai client")
		return nil
	}
	log.Infof("lookup oracle enabled with model %v", c.String(geminiModelFlag))
	return &Oracle{
		cl:    cl,
		model: c.String(geminiModelFlag),
	}
}

// TitleDetails is the oracle's best-effort metadata for one title. Any field
// may be empty.
type TitleDetails struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PosterURL   string   `json:"posterUrl"`
	TrailerURL  string   `json:"trailerUrl"`
	Rating      *float64 `json:"rating"`
	Year        *int16   `json:"year"`
	Genres      []string `json:"genres"`
}

func (s *Oracle) LookupTitle(ctx context.Context, name string, t models.ContentType) (*TitleDetails, error) {
	prompt := fmt.Sprintf(`You are a movie and series expert. Find the details for the %s titled %q.

Return a single JSON object with these fields:
- "title": the official title
- "description": a brief synopsis
- "posterUrl": a URL to a high-quality poster image
- "trailerUrl": the YouTube URL of the official trailer
- "rating": the IMDb rating out of 10, as a number
- "year": the release year, as a number
- "genres": a list of up to 3 relevant genre names

Leave a field empty if you cannot find it. Return only the JSON object.`, t, name)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseTitleDetails(text)
}

// TitleMatch is one candidate from a title search.
type TitleMatch struct {
	Title string `json:"title"`
	Year  *int16 `json:"year"`
}

// SearchTitles finds up to maxSearchResults candidates for a free-text
// query, for the admin to pick from before a full lookup.
func (s *Oracle) SearchTitles(ctx context.Context, query string, t models.ContentType) ([]TitleMatch, error) {
	prompt := fmt.Sprintf(`You are a media database expert. Find up to %d content titles matching the search query %q, of type %s.

Return a single JSON object: {"results": [{"title": "...", "year": 2000}, ...]}
with the full official title and release year of each match. Use an empty
"results" array if nothing matches. Return only the JSON object.`, maxSearchResults, query, t)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return ParseTitleMatches(text)
}

func (s *Oracle) FindTrailer(ctx context.Context, name string) (string, error) {
	prompt := fmt.Sprintf(`You are a movie expert. Find the official YouTube trailer URL for %q.

Return a single JSON object: {"trailerUrl": "..."}. Use an empty string if no
official trailer exists. Return only the JSON object.`, name)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return ParseTrailerURL(text)
}

func (s *Oracle) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.cl.Models.GenerateContent(ctx, s.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "oracle request failed")
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("oracle returned empty response")
	}
	return text, nil
}
