package repo

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// Full-range defaults of the browse sliders. Bounds sitting exactly on a
// default contribute no predicate.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1_000_000
	DefaultMinYear  = 1990
	DefaultMaxYear  = 2030
)

// CarFilter is the flat set of optional browse fields. Empty and "any"
// values are inert; everything that remains is AND-combined.
type CarFilter struct {
	Brand     string
	Model     string
	MinPrice  string
	MaxPrice  string
	MinYear   string
	MaxYear   string
	Fuel      string
	Condition string
	BodyType  string
	DriveType string
	Gearbox   string
	Query     string
}

func selective(v string) bool { return v != "" && v != "any" }

// Apply composes the filter onto a cars query. The free-text query is a
// prefix match against brand or model; the source system scanned only model,
// which was flagged as a gap rather than a contract.
func (f CarFilter) Apply(q *gorm.DB) *gorm.DB {
	if selective(f.Brand) {
		q = q.Where("brand = ?", f.Brand)
	}
	if selective(f.Model) {
		q = q.Where("model = ?", f.Model)
	}
	if selective(f.Fuel) {
		q = q.Where("fuel = ?", f.Fuel)
	}
	if selective(f.Condition) {
		q = q.Where("`condition` = ?", f.Condition)
	}
	if selective(f.BodyType) {
		q = q.Where("body_type = ?", f.BodyType)
	}
	if selective(f.DriveType) {
		q = q.Where("drive_type = ?", f.DriveType)
	}
	if selective(f.Gearbox) {
		q = q.Where("gearbox = ?", f.Gearbox)
	}
	if n, ok := bound(f.MinPrice, DefaultMinPrice); ok {
		q = q.Where("price >= ?", n)
	}
	if n, ok := bound(f.MaxPrice, DefaultMaxPrice); ok {
		q = q.Where("price <= ?", n)
	}
	if n, ok := bound(f.MinYear, DefaultMinYear); ok {
		q = q.Where("year >= ?", n)
	}
	if n, ok := bound(f.MaxYear, DefaultMaxYear); ok {
		q = q.Where("year <= ?", n)
	}
	if f.Query != "" {
		p := escapeLike(f.Query) + "%"
		q = q.Where("(brand LIKE ? ESCAPE '!' OR model LIKE ? ESCAPE '!')", p, p)
	}
	return q
}

// escapeLike neutralizes LIKE wildcards in user input so a query of "%"
// matches a literal percent sign, not every row.
func escapeLike(v string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(v)
}

// bound parses a numeric range field. Unparseable values and values equal to
// the full-range default are inert.
func bound(v string, def int) (int, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n == def {
		return 0, false
	}
	return n, true
}
