// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aminer

import "github.com/tidwall/gjson"

// RawAuthor is one author entry of an upstream record. Empty strings mean
// the field was absent or not a string.
type RawAuthor struct {
	ID     string
	Name   string
	NameZh string
	Org    string
}

// RawVenue is the venue object of an upstream record.
type RawVenue struct {
	NameZh string
	NameEn string
	Alias  string
}

// RawPaper is one upstream paper record, decoded leniently: a field of the
// wrong JSON type is treated as absent instead of failing the page.
// Authors is nil when the record has no authors array; an element is nil
// when that author entry is not an object.
type RawPaper struct {
	ID         string
	Title      string
	TitleZh    string
	Abstract   string
	AbstractZh string
	Keywords   []string
	KeywordsZh []string
	Authors    []*RawAuthor
	Venue      *RawVenue
	Year       int
	NCitation  int
	DOI        string
	URL        string
	Language   string
}

// parsePaper decodes one element of the data array. Anything other than a
// JSON object (null included) yields nil, the null-record signal.
func parsePaper(v gjson.Result) *RawPaper {
	if !v.IsObject() {
		return nil
	}

	p := &RawPaper{
		ID:         str(v, "id"),
		Title:      str(v, "title"),
		TitleZh:    str(v, "title_zh"),
		Abstract:   str(v, "abstract"),
		AbstractZh: str(v, "abstract_zh"),
		Keywords:   strList(v, "keywords"),
		KeywordsZh: strList(v, "keywords_zh"),
		Year:       num(v, "year"),
		NCitation:  num(v, "n_citation"),
		DOI:        str(v, "doi"),
		URL:        str(v, "url"),
		Language:   str(v, "language"),
	}
	if p.ID == "" {
		p.ID = str(v, "_id")
	}

	if authors := v.Get("authors"); authors.IsArray() {
		p.Authors = []*RawAuthor{}
		authors.ForEach(func(_, a gjson.Result) bool {
			if !a.IsObject() {
				p.Authors = append(p.Authors, nil)
				return true
			}
			p.Authors = append(p.Authors, &RawAuthor{
				ID:     str(a, "id"),
				Name:   str(a, "name"),
				NameZh: str(a, "name_zh"),
				Org:    str(a, "org"),
			})
			return true
		})
	}

	if venue := v.Get("venue"); venue.IsObject() {
		p.Venue = &RawVenue{
			NameZh: str(venue, "name_zh"),
			NameEn: str(venue, "name_en"),
			Alias:  str(venue, "alias"),
		}
	}

	return p
}

func str(v gjson.Result, key string) string {
	r := v.Get(key)
	if r.Type != gjson.String {
		return ""
	}
	return r.Str
}

func num(v gjson.Result, key string) int {
	r := v.Get(key)
	if r.Type != gjson.Number {
		return 0
	}
	return int(r.Int())
}

func strList(v gjson.Result, key string) []string {
	r := v.Get(key)
	if !r.IsArray() {
		return nil
	}
	var out []string
	r.ForEach(func(_, s gjson.Result) bool {
		if s.Type == gjson.String && s.Str != "" {
			out = append(out, s.Str)
		}
		return true
	})
	return out
}
