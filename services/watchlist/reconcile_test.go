package watchlist

import (
	"testing"

	uuid "github.com/satori/go.uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchdeck/web-ui/models"
)

func relation(want, watched bool, category string) *models.UserTitle {
	return &models.UserTitle{
		UserID:      uuid.NewV4(),
		TitleID:     uuid.NewV4(),
		WantToWatch: want,
		Watched:     watched,
		Category:    category,
	}
}

func TestToggleWantToWatch(t *testing.T) {
	t.Run("absent creates with supplied category", func(t *testing.T) {
		d, err := ToggleWantToWatch(nil, "Action", "Heat")
		require.NoError(t, err)
		assert.Equal(t, ActionCreate, d.Action)
		assert.Equal(t, Flags{WantToWatch: true}, d.Next)
		assert.Equal(t, "Action", d.Category)
		assert.Contains(t, d.Message, "Heat")
	})

	t.Run("absent without category defers the create", func(t *testing.T) {
		d, err := ToggleWantToWatch(nil, "", "Heat")
		assert.Nil(t, d)
		assert.ErrorIs(t, err, ErrCategoryRequired)
	})

	t.Run("want-only deletes", func(t *testing.T) {
		d, err := ToggleWantToWatch(relation(true, false, "Action"), "", "Heat")
		require.NoError(t, err)
		assert.Equal(t, ActionDelete, d.Action)
	})

	t.Run("watched-only updates to both with supplied category", func(t *testing.T) {
		d, err := ToggleWantToWatch(relation(false, true, "Others"), "Drama", "Heat")
		require.NoError(t, err)
		assert.Equal(t, ActionUpdate, d.Action)
		assert.Equal(t, Flags{WantToWatch: true, Watched: true}, d.Next)
		assert.Equal(t, "Drama", d.Category)
	})

	t.Run("watched-only without category defers", func(t *testing.T) {
		_, err := ToggleWantToWatch(relation(false, true, "Others"), "", "Heat")
		assert.ErrorIs(t, err, ErrCategoryRequired)
	})

	t.Run("both updates to watched-only keeping category", func(t *testing.T) {
		d, err := ToggleWantToWatch(relation(true, true, "Action"), "", "Heat")
		require.NoError(t, err)
		assert.Equal(t, ActionUpdate, d.Action)
		assert.Equal(t, Flags{Watched: true}, d.Next)
		assert.Equal(t, "Action", d.Category)
	})
}

func TestToggleWatched(t *testing.T) {
	t.Run("absent creates with default category", func(t *testing.T) {
		d := ToggleWatched(nil, "Heat")
		assert.Equal(t, ActionCreate, d.Action)
		assert.Equal(t, Flags{Watched: true}, d.Next)
		assert.Equal(t, DefaultCategory, d.Category)
	})

	t.Run("watched-only deletes", func(t *testing.T) {
		d := ToggleWatched(relation(false, true, "Others"), "Heat")
		assert.Equal(t, ActionDelete, d.Action)
	})

	t.Run("want-only updates to both", func(t *testing.T) {
		d := ToggleWatched(relation(true, false, "Action"), "Heat")
		assert.Equal(t, ActionUpdate, d.Action)
		assert.Equal(t, Flags{WantToWatch: true, Watched: true}, d.Next)
		assert.Equal(t, "Action", d.Category)
	})

	t.Run("both updates to want-only", func(t *testing.T) {
		d := ToggleWatched(relation(true, true, "Action"), "Heat")
		assert.Equal(t, ActionUpdate, d.Action)
		assert.Equal(t, Flags{WantToWatch: true}, d.Next)
	})
}

// applyDecision mirrors what the store persists, for table-driven sequence
// checks below.
func applyDecision(current *models.UserTitle, d *Decision) *models.UserTitle {
	switch d.Action {
	case ActionDelete:
		return nil
	case ActionCreate, ActionUpdate:
		return relationWith(d.Next, d.Category)
	default:
		return current
	}
}

func relationWith(f Flags, category string) *models.UserTitle {
	return relation(f.WantToWatch, f.Watched, category)
}

func TestToggleInvolution(t *testing.T) {
	states := map[string]*models.UserTitle{
		"absent":       nil,
		"want-only":    relation(true, false, "Action"),
		"watched-only": relation(false, true, "Others"),
		"both":         relation(true, true, "Action"),
	}

	t.Run("wantToWatch twice returns to the original state", func(t *testing.T) {
		for name, start := range states {
			d1, err := ToggleWantToWatch(start, "Action", "Heat")
			require.NoError(t, err, name)
			mid := applyDecision(start, d1)
			d2, err := ToggleWantToWatch(mid, "Action", "Heat")
			require.NoError(t, err, name)
			end := applyDecision(mid, d2)
			assert.Equal(t, start == nil, end == nil, name)
			if start != nil && end != nil {
				assert.Equal(t, start.WantToWatch, end.WantToWatch, name)
				assert.Equal(t, start.Watched, end.Watched, name)
			}
		}
	})

	t.Run("watched twice returns to the original state", func(t *testing.T) {
		for name, start := range states {
			d1 := ToggleWatched(start, "Heat")
			mid := applyDecision(start, d1)
			d2 := ToggleWatched(mid, "Heat")
			end := applyDecision(mid, d2)
			assert.Equal(t, start == nil, end == nil, name)
			if start != nil && end != nil {
				assert.Equal(t, start.WantToWatch, end.WantToWatch, name)
				assert.Equal(t, start.Watched, end.Watched, name)
			}
		}
	})

	t.Run("no persisted state ever has both flags false", func(t *testing.T) {
		for name, start := range states {
			if d, err := ToggleWantToWatch(start, "Action", "Heat"); err == nil && d.Action != ActionDelete && d.Action != ActionNone {
				assert.True(t, d.Next.WantToWatch || d.Next.Watched, name)
			}
			if d := ToggleWatched(start, "Heat"); d.Action != ActionDelete && d.Action != ActionNone {
				assert.True(t, d.Next.WantToWatch || d.Next.Watched, name)
			}
		}
	})
}
