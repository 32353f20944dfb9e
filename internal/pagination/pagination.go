// Package pagination разбирает параметры page/page_size и строит
// конверт страницы {count, next, previous, results}.
package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hrms-lite-api/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Params - разобранные параметры пагинации
type Params struct {
	Page     int
	PageSize int
}

// Parse разбирает page и page_size из запроса.
// Некорректный page_size заменяется значением по умолчанию, слишком большой
// ограничивается MaxPageSize; некорректный page даёт ErrInvalidPage.
// page=last раскрывается в Resolve, до этого Page равен 0.
func Parse(r *http.Request) (Params, error) {
	q := r.URL.Query()
	p := Params{Page: DefaultPage, PageSize: DefaultPageSize}

	switch raw := strings.TrimSpace(q.Get("page")); raw {
	case "":
	case "last":
		p.Page = 0
	default:
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return p, domain.ErrInvalidPage
		}
		p.Page = page
	}

	if raw := strings.TrimSpace(q.Get("page_size")); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			p.PageSize = min(size, MaxPageSize)
		}
	}

	return p, nil
}

// Offset возвращает смещение первой записи страницы
func (p Params) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// Limit возвращает размер страницы
func (p Params) Limit() int {
	return p.PageSize
}

// TotalPages возвращает число страниц; пустой список занимает одну страницу
func TotalPages(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Resolve проверяет страницу относительно общего числа записей
// и раскрывает page=last
func (p Params) Resolve(total int64) (Params, error) {
	pages := TotalPages(total, p.PageSize)
	if p.Page == 0 {
		p.Page = pages
	}
	if p.Page > pages {
		return p, domain.ErrInvalidPage
	}
	return p, nil
}

// Page - конверт страницы
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage строит конверт страницы со ссылками на соседние страницы
func NewPage[T any](r *http.Request, p Params, total int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: total, Results: results}

	if p.Page < TotalPages(total, p.PageSize) {
		next := pageURL(r, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(r, p.Page-1)
		page.Previous = &prev
	}
	return page
}

// pageURL строит абсолютную ссылку на страницу; для первой страницы page опускается
func pageURL(r *http.Request, page int) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	q := r.URL.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
