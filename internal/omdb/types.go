package omdb

import (
	"math"
	"strconv"
	"strings"
)

// Movie is a single search hit from ?s=.
type Movie struct {
	IMDbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// SearchResponse mirrors the payload returned for ?s= queries.
type SearchResponse struct {
	Response     string  `json:"Response"`
	Error        string  `json:"Error"`
	Search       []Movie `json:"Search"`
	TotalResults string  `json:"totalResults"`
}

// Details mirrors the payload returned for ?i= lookups.
type Details struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	IMDbID     string `json:"imdbID"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Runtime    string `json:"Runtime"`
	IMDbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	Actors     string `json:"Actors"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
}

// RuntimeMinutes parses values like "148 min". Unknown runtimes are 0.
func (d Details) RuntimeMinutes() int {
	fields := strings.Fields(d.Runtime)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Rating parses imdbRating. "N/A", NaN, infinities and junk are 0.
func (d Details) Rating() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(d.IMDbRating), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func isFalse(response string) bool {
	return strings.EqualFold(strings.TrimSpace(response), "False")
}

// available reports whether an OMDb field carries a real value.
func available(value string) bool {
	v := strings.TrimSpace(value)
	return v != "" && !strings.EqualFold(v, "N/A")
}

// HasPoster reports whether the poster URL is usable.
func (m Movie) HasPoster() bool { return available(m.Poster) }

// HasPoster reports whether the poster URL is usable.
func (d Details) HasPoster() bool { return available(d.Poster) }
