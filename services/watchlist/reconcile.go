package watchlist

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/watchdeck/web-ui/models"
)

// DefaultCategory is assigned when a relation is created by marking a title
// watched, since that flow never prompts for a category.
const DefaultCategory = "Others"

// ErrCategoryRequired signals that the toggle would set wantToWatch on a
// relation that has no category yet; the caller must collect one and retry.
// No persistence action is issued.
var ErrCategoryRequired = errors.New("category required")

type Action int

const (
	ActionNone Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return "none"
	}
}

// Flags is the relation state per (user, title). The zero value stands for
// ABSENT only transiently: a persisted relation always has at least one flag
// set, a decision leaving both false is a delete.
type Flags struct {
	WantToWatch bool
	Watched     bool
}

// Decision is the outcome of one toggle: the persistence action to issue,
// the resulting flags and category, and the confirmation message to show.
type Decision struct {
	Action   Action
	Next     Flags
	Category string
	Message  string
}

// ToggleWantToWatch computes the next relation state when the user toggles
// the want-to-watch flag. current is nil when no relation exists. category is
// required whenever the toggle turns the flag on; transitions that turn it
// off keep the stored category.
func ToggleWantToWatch(current *models.UserTitle, category, titleName string) (*Decision, error) {
	if current == nil {
		if category == "" {
			return nil, ErrCategoryRequired
		}
		return &Decision{
			Action:   ActionCreate,
			Next:     Flags{WantToWatch: true},
			Category: category,
			Message:  fmt.Sprintf("%q added to My List", titleName),
		}, nil
	}
	if current.WantToWatch {
		if current.Watched {
			return &Decision{
				Action:   ActionUpdate,
				Next:     Flags{Watched: true},
				Category: current.Category,
				Message:  fmt.Sprintf("%q removed from My List", titleName),
			}, nil
		}
		return &Decision{
			Action:  ActionDelete,
			Message: fmt.Sprintf("%q removed from My List", titleName),
		}, nil
	}
	// watched-only: turning wantToWatch on needs a category, same as create
	if category == "" {
		return nil, ErrCategoryRequired
	}
	return &Decision{
		Action:   ActionUpdate,
		Next:     Flags{WantToWatch: true, Watched: true},
		Category: category,
		Message:  fmt.Sprintf("%q added to My List", titleName),
	}, nil
}

// ToggleWatched computes the next relation state when the user toggles the
// watched flag. No category is ever prompted on this path; creates fall back
// to DefaultCategory.
func ToggleWatched(current *models.UserTitle, titleName string) *Decision {
	if current == nil {
		return &Decision{
			Action:   ActionCreate,
			Next:     Flags{Watched: true},
			Category: DefaultCategory,
			Message:  fmt.Sprintf("%q marked as watched", titleName),
		}
	}
	if current.Watched {
		if current.WantToWatch {
			return &Decision{
				Action:   ActionUpdate,
				Next:     Flags{WantToWatch: true},
				Category: current.Category,
				Message:  fmt.Sprintf("%q removed from Watched", titleName),
			}
		}
		return &Decision{
			Action:  ActionDelete,
			Message: fmt.Sprintf("%q removed from Watched", titleName),
		}
	}
	return &Decision{
		Action:   ActionUpdate,
		Next:     Flags{WantToWatch: true, Watched: true},
		Category: current.Category,
		Message:  fmt.Sprintf("%q marked as watched", titleName),
	}
}
