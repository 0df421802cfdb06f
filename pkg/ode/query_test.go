package ode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validQuery() Query {
	return Query{
		Target:  TargetMars,
		MinLat:  -10,
		MaxLat:  10,
		WestLon: 170,
		EastLon: 190,
	}
}

func TestQueryValidate(t *testing.T) {
	require.NoError(t, validQuery().Validate())

	cases := map[string]func(*Query){
		"bad target":        func(q *Query) { q.Target = "pluto" },
		"minlat low":        func(q *Query) { q.MinLat = -91 },
		"minlat at pole":    func(q *Query) { q.MinLat = 90 },
		"maxlat high":       func(q *Query) { q.MaxLat = 91 },
		"maxlat at pole":    func(q *Query) { q.MaxLat = -90 },
		"westlon low":       func(q *Query) { q.WestLon = -181 },
		"westlon high":      func(q *Query) { q.WestLon = 360 },
		"eastlon low":       func(q *Query) { q.EastLon = -180 },
		"eastlon high":      func(q *Query) { q.EastLon = 361 },
		"lat inverted":      func(q *Query) { q.MinLat, q.MaxLat = 10, -10 },
		"lon inverted":      func(q *Query) { q.WestLon, q.EastLon = 190, 170 },
		"bad email":         func(q *Query) { q.Email = "nobody" },
		"mercury sync-only": func(q *Query) { q.Target = TargetMercury },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			q := validQuery()
			mutate(&q)
			require.Error(t, q.Validate())
		})
	}
}

func TestQueryValidateMercuryAsync(t *testing.T) {
	q := validQuery()
	q.Target = TargetMercury
	q.Async = true
	require.NoError(t, q.Validate())
}

func TestQueryValidateEmail(t *testing.T) {
	q := validQuery()
	q.Email = "user@example.com"
	require.NoError(t, q.Validate())
}

func TestLonTo360(t *testing.T) {
	require.Equal(t, 0.0, LonTo360(0))
	require.Equal(t, 180.0, LonTo360(-180))
	require.Equal(t, 350.0, LonTo360(-10))
	require.Equal(t, 270.5, LonTo360(270.5))
	require.Equal(t, 0.0, LonTo360(360))
}

func TestQueryParams(t *testing.T) {
	q := validQuery()
	q.WestLon = -10
	q.EastLon = 10
	q.Email = "user@example.com"
	v := q.params()

	require.Equal(t, "molapedr", v.Get("query"))
	require.Equal(t, "json", v.Get("output"))
	require.Equal(t, "v", v.Get("results"))
	require.Equal(t, "350", v.Get("westernlon"))
	require.Equal(t, "10", v.Get("easternlon"))
	require.Equal(t, "f", v.Get("async"))
	require.Equal(t, "user@example.com", v.Get("email"))

	q.Async = true
	require.Equal(t, "t", q.params().Get("async"))
}
