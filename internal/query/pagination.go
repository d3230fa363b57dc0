package query

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	DefaultPageSize   = 15
	DefaultPageNumber = 1
)

// Page is a parsed page descriptor. Values are not validated beyond default
// substitution: negative numbers and an explicit "0" string pass through.
type Page struct {
	Size   int
	Number int
}

// DefaultPage returns the first page with the default size.
func DefaultPage() Page {
	return Page{Size: DefaultPageSize, Number: DefaultPageNumber}
}

// ParsePage reads page_size and page_number from a decoded pagination object.
func ParsePage(raw map[string]interface{}) Page {
	return Page{
		Size:   coerceInt(raw["page_size"], DefaultPageSize),
		Number: coerceInt(raw["page_number"], DefaultPageNumber),
	}
}

// Skip is the number of documents before the page.
func (p Page) Skip() int64 { return int64(p.Number-1) * int64(p.Size) }

// Limit is the maximum number of documents on the page.
func (p Page) Limit() int64 { return int64(p.Size) }

// Pagination is the envelope metadata returned with every list.
type Pagination struct {
	Count     int64 `json:"count"`
	TotalPage int64 `json:"totalPage"`
	Next      *int  `json:"next,omitempty"`
	Previous  *int  `json:"previous,omitempty"`
}

// Envelope is a page of documents plus its pagination metadata.
type Envelope struct {
	Items      []bson.M
	Pagination Pagination
}

// Paginate computes the envelope metadata for page p of count documents.
//
// next is only reported when p.Number+1 < totalPage, so the page before the
// last one never advertises a next page. Callers rely on that behaviour.
// A non-positive page size yields totalPage 0.
func Paginate(p Page, count int64) Pagination {
	out := Pagination{Count: count}
	if p.Size > 0 {
		out.TotalPage = (count + int64(p.Size) - 1) / int64(p.Size)
		if count < 0 {
			out.TotalPage = 0
		}
	}
	if int64(p.Number+1) < out.TotalPage {
		n := p.Number + 1
		out.Next = &n
	}
	if p.Number > 1 {
		prev := p.Number - 1
		out.Previous = &prev
	}
	return out
}

// coerceInt mirrors "parseInt(v || def)": falsy values take the default,
// numbers truncate, strings use their leading integer prefix and anything
// non-numeric takes the default.
func coerceInt(v interface{}, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case bool:
		return def
	case string:
		if t == "" {
			return def
		}
		n, ok := leadingInt(t)
		if !ok {
			return def
		}
		return n
	case float64:
		if t == 0 {
			return def
		}
	}
	n, err := cast.ToIntE(v)
	if err != nil || n == 0 {
		return def
	}
	return n
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
