package model

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidationError reports every invalid field of a cabinet, material or job.
// Field keys use the JSON names, e.g. "depth" or "cabinets[1].cabinet.width".
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "invalid input", Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + e.Fields[k]
	}
	return e.Detail + ": " + strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate rejects non-positive dimensions, negative divisions, and cabinets
// too shallow or narrow to hold a shelf.
func (c Cabinet) Validate() error {
	fields := structFields(c)
	addShelfRules(fields, c, "")
	return asError(fields)
}

// Validate rejects an empty type, non-positive thickness and negative kerf.
func (m Material) Validate() error {
	return asError(structFields(m))
}

// Validate rejects a non-positive scale, negative waste percentages or sheet
// sizes, and a price that is not a decimal number.
func (c AppConfig) Validate() error {
	fields := structFields(c)
	if c.PricePerSheet != "" {
		if _, err := decimal.NewFromString(c.PricePerSheet); err != nil {
			fields["price_per_sheet"] = fmt.Sprintf("must be a decimal number, got %q", c.PricePerSheet)
		}
	}
	return asError(fields)
}

// Validate checks the material, every cabinet, and that no two cabinets
// share a reference (their panel IDs would collide).
func (j Job) Validate() error {
	fields := structFields(j)
	seen := make(map[string]int)
	for i, jc := range j.Cabinets {
		prefix := fmt.Sprintf("cabinets[%d].", i)
		addShelfRules(fields, jc.Cabinet, prefix+"cabinet.")
		ref := jc.Ref()
		if first, dup := seen[ref]; dup {
			fields[prefix+"number"] = fmt.Sprintf("duplicates the reference of cabinets[%d]", first)
			continue
		}
		seen[ref] = i
	}
	return asError(fields)
}

func structFields(s any) map[string]string {
	fields := make(map[string]string)
	err := validate.Struct(s)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		fields[fieldKey(fe.Namespace())] = describe(fe)
	}
	return fields
}

// fieldKey drops the leading struct type name from a validator namespace.
func fieldKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must have at least " + fe.Param() + " entries"
	default:
		return "failed " + fe.Tag()
	}
}

func addShelfRules(fields map[string]string, c Cabinet, prefix string) {
	if c.Divisions <= 0 {
		return
	}
	if _, bad := fields[prefix+"depth"]; !bad && c.Depth <= ShelfSetback {
		fields[prefix+"depth"] = fmt.Sprintf("must exceed %d mm when the cabinet has shelves", ShelfSetback)
	}
	if _, bad := fields[prefix+"width"]; !bad && c.Width <= ShelfPinClearance {
		fields[prefix+"width"] = fmt.Sprintf("must exceed %d mm when the cabinet has shelves", ShelfPinClearance)
	}
}

func asError(fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return NewValidation(fields)
}
