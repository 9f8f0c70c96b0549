package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sabrinaansede/apphib/internal/domain/entity"
)

func names(places []entity.Place) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.Nombre
	}
	return out
}

func fixture() ([]entity.Place, []entity.Review) {
	places := []entity.Place{
		{ID: "p1", Nombre: "Plaza Sarmiento", Direccion: "Av. Libertador 100", Tipo: "Plaza", Provincia: "Mendoza", Certificacion: "APADEA"},
		{ID: "p2", Nombre: "Ñandú Café", Direccion: "Calle 9", Tipo: "Café", Provincia: "Córdoba", Descripcion: "luz tenue"},
		{ID: "p3", Nombre: "Nube Museo", Direccion: "Calle 1", Tipo: "Museo", Provincia: "Mendoza", Certificacion: "Comunidad"},
		{ID: "p4", Nombre: "árbol Parque", Tipo: "Plaza", Provincia: ""},
	}
	reviews := []entity.Review{
		{Lugar: "p1", Puntuacion: 5},
		{Lugar: "p1", Puntuacion: 3},
		{Lugar: "p3", Puntuacion: 4},
		{Lugar: "", Puntuacion: 5},
	}
	return places, reviews
}

func TestAggregate(t *testing.T) {
	_, reviews := fixture()
	r := Aggregate(reviews)

	assert.Equal(t, Rating{Sum: 8, Count: 2, Average: 4}, r["p1"])
	assert.Equal(t, 4.0, r.Average("p3"))
	assert.Equal(t, 0.0, r.Average("p2"))
	assert.Len(t, r, 2)
}

func TestZeroFiltersKeepEverything(t *testing.T) {
	places, reviews := fixture()

	res := Build(places, reviews, Filters{}, SortDefault)

	assert.Equal(t, names(places), names(res.Places))
}

func TestQueryMatchesNameAddressOrDescription(t *testing.T) {
	places, _ := fixture()

	got := Filter(places, nil, FiltersFromForm("LUZ", "", "", "", 0, ""))
	assert.Equal(t, []string{"Ñandú Café"}, names(got))

	got = Filter(places, nil, FiltersFromForm("calle", "", "", "", 0, ""))
	assert.Equal(t, []string{"Ñandú Café", "Nube Museo"}, names(got))
}

func TestCertificationTreatsEmptyAsCommunity(t *testing.T) {
	places, _ := fixture()

	got := Filter(places, nil, FiltersFromForm("", "", "", "Comunidad", 0, ""))
	assert.Equal(t, []string{"Ñandú Café", "Nube Museo", "árbol Parque"}, names(got))

	got = Filter(places, nil, FiltersFromForm("", "", "", "APADEA", 0, ""))
	assert.Equal(t, []string{"Plaza Sarmiento"}, names(got))
}

func TestInitialAndRegion(t *testing.T) {
	places, _ := fixture()

	got := Filter(places, nil, FiltersFromForm("", "", "Mendoza", "", 0, "n"))
	assert.Equal(t, []string{"Nube Museo"}, names(got))

	got = Filter(places, nil, FiltersFromForm("", "", "", "", 0, "Á"))
	assert.Equal(t, []string{"árbol Parque"}, names(got))
}

func TestMinRatingDropsUnreviewed(t *testing.T) {
	places, reviews := fixture()

	res := Build(places, reviews, FiltersFromForm("", "", "", "", 4, ""), SortDefault)

	assert.Equal(t, []string{"Plaza Sarmiento", "Nube Museo"}, names(res.Places))
}

func TestSortByNameUsesSpanishOrder(t *testing.T) {
	places, _ := fixture()

	got := Sort(places, nil, SortName)

	assert.Equal(t, []string{"árbol Parque", "Nube Museo", "Ñandú Café", "Plaza Sarmiento"}, names(got))
	assert.Equal(t, "Plaza Sarmiento", places[0].Nombre, "input must not be reordered")
}

func TestSortByRatingIsStable(t *testing.T) {
	places, reviews := fixture()
	ratings := Aggregate(reviews)
	ratings["p1"] = Rating{Sum: 4, Count: 1, Average: 4}

	got := Sort(places, ratings, SortRating)

	assert.Equal(t, []string{"Plaza Sarmiento", "Nube Museo", "Ñandú Café", "árbol Parque"}, names(got))
}

func TestOptionsFirstSeenOrder(t *testing.T) {
	places, _ := fixture()

	cats, regions := Options(places)

	assert.Equal(t, []string{"Plaza", "Café", "Museo"}, cats)
	assert.Equal(t, []string{"Mendoza", "Córdoba"}, regions)
}

func TestMatchSumType(t *testing.T) {
	require.True(t, Unset().IsUnset())
	assert.True(t, Unset().Accept("anything"))
	assert.False(t, Equals("Plaza").Accept("plaza"))
	assert.True(t, Contains("PLA").Accept("x", "Plaza"))
	assert.True(t, AnyRating().Accept(0))
	assert.False(t, AtLeast(4).Accept(3.9))
	assert.Equal(t, SortDefault, ParseSortKey("bogus"))
}
