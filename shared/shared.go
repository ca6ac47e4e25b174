package shared

import (
	"reflect"
	"strconv"
	"vista/shared/constant"
	"vista/shared/dto"
	"vista/shared/timezone"

	"github.com/rs/zerolog/log"
)

// ConvertStringToBool parses an optional boolean query flag. Absent or malformed values yield nil.
func ConvertStringToBool(value string) *bool {
	if value == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Debug().Err(err).Str("value", value).Msg("ignoring malformed boolean flag")

		return nil
	}

	return &parsed
}

// CalculateTotalPage never reports fewer than one page, so an empty list still renders page 1 of 1.
func CalculateTotalPage(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 1
	}

	return (total + limit - 1) / limit
}

// TransformFields turns the non-zero db-tagged fields of a patch struct into an update map and stamps the
// modification metadata. Non-nil pointers are dereferenced, which lets a patch set a column to its zero value.
func TransformFields(data any, username string) map[string]any {
	val := reflect.ValueOf(data)
	typ := val.Type()

	updatedFields := make(map[string]any, typ.NumField()+2)

	for index := range val.NumField() {
		column := typ.Field(index).Tag.Get("db")
		if column == "" || column == "-" {
			continue
		}

		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[column] = field.Interface()
	}

	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = username

	return updatedFields
}

func FilterByID(id, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// SearchFilter matches the term as a case-insensitive substring of any of the fields.
func SearchFilter(term, table string, fields ...string) dto.FilterGroup {
	group := dto.FilterGroup{Operator: dto.FilterGroupOperatorOr}

	for _, field := range fields {
		group.Filters = append(group.Filters, dto.Filter{
			ArgName:  "search_" + field,
			Field:    field,
			Value:    term,
			Operator: dto.FilterOperatorLike,
			Table:    table,
		})
	}

	return group
}

// FilterIn builds an IN filter. An empty slice matches no rows.
func FilterIn(field, table string, values []string) dto.Filter {
	return dto.Filter{
		Field:    field,
		Value:    values,
		Operator: dto.FilterOperatorIn,
		Table:    table,
	}
}
