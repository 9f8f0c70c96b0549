// Package view derives what the map screen shows from places and reviews:
// aggregate ratings, filter, then sort.
package view

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

type Rating struct {
	Sum     int
	Count   int
	Average float64
}

// Ratings is keyed by place id. Places without reviews are absent.
type Ratings map[string]Rating

// Average is 0 for places without reviews.
func (r Ratings) Average(placeID string) float64 {
	return r[placeID].Average
}

func Aggregate(reviews []entity.Review) Ratings {
	out := make(Ratings)
	for _, rv := range reviews {
		if rv.Lugar == "" {
			continue
		}
		agg := out[rv.Lugar]
		agg.Sum += rv.Puntuacion
		agg.Count++
		out[rv.Lugar] = agg
	}
	for id, agg := range out {
		if agg.Count > 0 {
			agg.Average = float64(agg.Sum) / float64(agg.Count)
		}
		out[id] = agg
	}
	return out
}

type Filters struct {
	Query         Match
	Category      Match
	Region        Match
	Certification Match
	MinRating     RatingFloor
	Initial       Match
}

// FiltersFromForm maps raw form values to filters; empty strings and a zero
// rating mean "no filter".
func FiltersFromForm(query, category, region, certification string, minRating float64, initial string) Filters {
	f := Filters{}
	if query != "" {
		f.Query = Contains(query)
	}
	if category != "" {
		f.Category = Equals(category)
	}
	if region != "" {
		f.Region = Equals(region)
	}
	if certification != "" {
		f.Certification = Equals(certification)
	}
	if minRating > 0 {
		f.MinRating = AtLeast(minRating)
	}
	if initial := strings.TrimSpace(initial); initial != "" {
		f.Initial = Equals(strings.ToUpper(firstLetter(initial)))
	}
	return f
}

func firstLetter(s string) string {
	r, size := utf8.DecodeRuneInString(strings.TrimSpace(s))
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r))
}

// Filter keeps the places accepted by every criterion, preserving order.
func Filter(places []entity.Place, ratings Ratings, f Filters) []entity.Place {
	out := make([]entity.Place, 0, len(places))
	for i := range places {
		p := &places[i]
		if !f.Query.Accept(p.Nombre, p.Direccion, p.Descripcion) {
			continue
		}
		if !f.Category.Accept(p.Tipo) || !f.Region.Accept(p.Provincia) {
			continue
		}
		if !f.Certification.Accept(p.Certification()) {
			continue
		}
		if !f.Initial.Accept(firstLetter(p.Nombre)) {
			continue
		}
		if !f.MinRating.Accept(ratings.Average(p.ID)) {
			continue
		}
		out = append(out, *p)
	}
	return out
}

type SortKey string

const (
	SortDefault SortKey = "default"
	SortName    SortKey = "name"
	SortRating  SortKey = "rating"
)

// ParseSortKey falls back to SortDefault for unknown input.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortName, SortRating:
		return SortKey(s)
	default:
		return SortDefault
	}
}

// Sort returns a sorted copy; the input is left untouched.
func Sort(places []entity.Place, ratings Ratings, key SortKey) []entity.Place {
	out := append([]entity.Place(nil), places...)
	switch key {
	case SortName:
		col := collate.New(language.Spanish, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return col.CompareString(out[i].Nombre, out[j].Nombre) < 0
		})
	case SortRating:
		sort.SliceStable(out, func(i, j int) bool {
			return ratings.Average(out[i].ID) > ratings.Average(out[j].ID)
		})
	}
	return out
}

type Result struct {
	Places  []entity.Place
	Ratings Ratings
}

func Build(places []entity.Place, reviews []entity.Review, f Filters, key SortKey) Result {
	ratings := Aggregate(reviews)
	return Result{
		Places:  Sort(Filter(places, ratings, f), ratings, key),
		Ratings: ratings,
	}
}

// Options lists the distinct non-empty categories and regions in first-seen order.
func Options(places []entity.Place) (categories, regions []string) {
	seenCat := make(map[string]bool)
	seenReg := make(map[string]bool)
	for _, p := range places {
		if p.Tipo != "" && !seenCat[p.Tipo] {
			seenCat[p.Tipo] = true
			categories = append(categories, p.Tipo)
		}
		if p.Provincia != "" && !seenReg[p.Provincia] {
			seenReg[p.Provincia] = true
			regions = append(regions, p.Provincia)
		}
	}
	return categories, regions
}
