package entity

import (
	"net/url"
)

type Genre string

const (
	GenreFiction   Genre = "FICTION"
	GenreFantasy   Genre = "FANTASY"
	GenreDetective Genre = "DETECTIVE"
	GenreDrama     Genre = "DRAMA"
	GenrePoetry    Genre = "POETRY"
	GenreHistory   Genre = "HISTORY"
	GenreScience   Genre = "SCIENCE"
)

// Genres returns the full enumerated set, in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction,
		GenreFantasy,
		GenreDetective,
		GenreDrama,
		GenrePoetry,
		GenreHistory,
		GenreScience,
	}
}

func ParseGenre(value string) (Genre, bool) {
	for _, g := range Genres() {
		if string(g) == value {
			return g, true
		}
	}
	return "", false
}

// ParseGenresFromForm extracts the selected genre checkboxes from a submitted
// form. A genre counts as selected when a form key matches its name. Keys that
// do not name a genre are ignored.
func ParseGenresFromForm(form url.Values) []Genre {
	var selected []Genre
	for _, g := range Genres() {
		if _, ok := form[string(g)]; ok {
			selected = append(selected, g)
		}
	}
	return selected
}
