package validation

import "strconv"

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampPagination bounds raw list-query parameters. Parse failures fall back
// to the defaults rather than erroring; the result always satisfies
// 1 <= limit <= MaxLimit and offset >= 0, so raw client values never reach
// the storage layer.
func ClampPagination(rawLimit, rawOffset string) (int, int) {
	limit := atoiOr(rawLimit, DefaultLimit)
	offset := atoiOr(rawOffset, 0)

	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
