package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
	"vista/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir. Non-positive or malformed numbers are ignored and limit
// is capped at constant.MaxValueLimit. With applyDefaults, missing page and limit fall back to the defaults.
// sort_by is taken verbatim here; OrderBy must run before the params reach a query.
func (q *QueryParams) FromRequest(r *http.Request, applyDefaults bool) {
	query := r.URL.Query()

	if page, ok := positiveInt(query.Get(constant.RequestParamPage)); ok {
		q.Page = page
	}

	if limit, ok := positiveInt(query.Get(constant.RequestParamLimit)); ok {
		q.Limit = min(limit, constant.MaxValueLimit)
	}

	if sortBy := query.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir == SortDirAsc || dir == SortDirDesc {
		q.SortDir = dir
	}

	if !applyDefaults {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

func positiveInt(raw string) (int, bool) {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return 0, false
	}

	return value, true
}

// OrderBy applies a default ordering and drops a requested sort column that is not allowed.
// SortBy is interpolated into the query, so only whitelisted columns may pass.
func (q *QueryParams) OrderBy(defaultBy, defaultDir string, allowed ...string) {
	if q.SortBy != "" && !slices.Contains(allowed, q.SortBy) {
		q.SortBy = ""
	}

	if q.SortBy == "" {
		q.SortBy = defaultBy
		q.SortDir = defaultDir
	}

	if q.SortDir == "" {
		q.SortDir = SortDirAsc
	}
}
