package pkg

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/launchline/concierge/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 100
	defaultSort  = "created_at"
	defaultOrder = "desc"
)

// validFieldName matches only identifiers safe to interpolate into SQL.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// dateLayouts are the accepted formats for date_from/date_to, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseIntOr parses s as an integer, returning def when s is empty or not a
// number. Malformed numeric input deliberately degrades to the default
// instead of erroring; only sort/order values are validation failures.
func parseIntOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ParsePageRequest extracts pagination and ordering parameters from the
// request query and normalizes them into a PageRequest.
//
// limit is clamped into [1, 100] with a default of 20. page takes precedence
// over offset: when page is supplied, offset is derived as (page-1)*limit;
// otherwise offset is read directly and page derived from it. A sort field
// outside allowedSortFields, or an order other than asc/desc, is a
// validation error returned before any store access.
func ParsePageRequest(c *gin.Context, allowedSortFields []string) (domain.PageRequest, error) {
	limit := parseIntOr(c.Query("limit"), defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	var page, offset int
	if rawPage := c.Query("page"); rawPage != "" {
		page = parseIntOr(rawPage, 1)
		if page < 1 {
			page = 1
		}
		offset = (page - 1) * limit
	} else {
		offset = parseIntOr(c.Query("offset"), 0)
		if offset < 0 {
			offset = 0
		}
		page = offset/limit + 1
	}

	sort := c.DefaultQuery("sort", defaultSort)
	if sort != defaultSort {
		if !validFieldName.MatchString(sort) || !slices.Contains(allowedSortFields, sort) {
			return domain.PageRequest{}, domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("invalid sort field %q: allowed fields are %s", sort, strings.Join(allowedSortFields, ", ")), nil)
		}
	}

	order := strings.ToLower(c.DefaultQuery("order", defaultOrder))
	if order != "asc" && order != "desc" {
		return domain.PageRequest{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid order %q: must be asc or desc", c.Query("order")), nil)
	}

	return domain.PageRequest{
		Limit:  limit,
		Offset: offset,
		Page:   page,
		Sort:   sort,
		Order:  order,
	}, nil
}

// ParseFilters extracts the recognized filter parameters from the request
// query. Unrecognized parameters are ignored for forward compatibility.
// search is trimmed and dropped when empty; unparseable dates are silently
// dropped rather than errored.
func ParseFilters(c *gin.Context) domain.FilterSet {
	return domain.FilterSet{
		Status:     strings.TrimSpace(c.Query("status")),
		Search:     strings.TrimSpace(c.Query("search")),
		DateFrom:   parseDate(c.Query("date_from")),
		DateTo:     parseDate(c.Query("date_to")),
		CreatedBy:  strings.TrimSpace(c.Query("created_by")),
		AssignedTo: strings.TrimSpace(c.Query("assigned_to")),
	}
}

// parseDate tries the accepted layouts and returns nil when none match.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET from the page
// request. It belongs on the data query only; counts are range-independent.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset).Limit(req.Limit)
	}
}

// Sort returns a GORM scope that applies ORDER BY from the page request.
// The sort field was validated against the caller's allowed list at parse
// time; the identifier pattern is re-checked here as a second guard.
func Sort(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !validFieldName.MatchString(req.Sort) {
			return db
		}
		order := req.Order
		if order != "asc" && order != "desc" {
			order = defaultOrder
		}
		return db.Order(req.Sort + " " + order)
	}
}

// Filter returns a GORM scope that applies the structured filters. Equality
// filters (status, created_by, assigned_to) are applied only when their
// column is in the allowed list, so a recognized parameter that a given
// listing does not support is skipped rather than errored. The date range
// always applies to created_at, which every model carries.
func Filter(f domain.FilterSet, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Status != "" && slices.Contains(allowed, "status") {
			db = db.Where("status = ?", f.Status)
		}
		if f.CreatedBy != "" && slices.Contains(allowed, "created_by") {
			db = db.Where("created_by = ?", f.CreatedBy)
		}
		if f.AssignedTo != "" && slices.Contains(allowed, "assigned_to") {
			db = db.Where("assigned_to = ?", f.AssignedTo)
		}
		if f.DateFrom != nil {
			db = db.Where("created_at >= ?", *f.DateFrom)
		}
		if f.DateTo != nil {
			db = db.Where("created_at <= ?", *f.DateTo)
		}
		return db
	}
}

// Search returns a GORM scope that applies a case-insensitive substring
// match ORed across the given fields. With no search term or no declared
// search fields the scope is a no-op, so a search parameter against a
// listing without searchable fields is silently ignored.
func Search(f domain.FilterSet, fields []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search == "" || len(fields) == 0 {
			return db
		}

		var conds []string
		var args []any
		pattern := "%" + strings.ToLower(f.Search) + "%"
		for _, field := range fields {
			if !validFieldName.MatchString(field) {
				continue
			}
			conds = append(conds, "LOWER("+field+") LIKE ?")
			args = append(args, pattern)
		}
		if len(conds) == 0 {
			return db
		}
		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// NewPageResult assembles the result envelope from a page of items, the
// filtered total, and the original request. total_pages is ceil(total/limit)
// and has_next holds exactly when another page exists past this offset.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest, filters domain.FilterSet) *domain.PageResult[T] {
	if items == nil {
		items = []T{}
	}

	totalPages := 0
	if req.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Limit)))
	}

	return &domain.PageResult[T]{
		Data: items,
		Pagination: domain.PaginationMeta{
			Total:       total,
			Limit:       req.Limit,
			Offset:      req.Offset,
			Page:        req.Page,
			TotalPages:  totalPages,
			HasNext:     int64(req.Offset+req.Limit) < total,
			HasPrevious: req.Offset > 0,
		},
		Filters: filters,
	}
}

// FindPage runs the two-query pagination protocol for model T: a count with
// the filter predicates, then the data query with the same predicates plus
// ordering and range. The two round-trips are sequential and uncached; the
// listings this serves are low-traffic dashboard reads.
func FindPage[T any](db *gorm.DB, req domain.PageRequest, filters domain.FilterSet, filterFields, searchFields []string) (*domain.PageResult[T], error) {
	base := db.Model(new(T)).Scopes(
		Filter(filters, filterFields),
		Search(filters, searchFields),
	)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, MapDBError(err)
	}

	var items []T
	if err := base.Scopes(Sort(req), Paginate(req)).Find(&items).Error; err != nil {
		return nil, MapDBError(err)
	}

	return NewPageResult(items, total, req, filters), nil
}
