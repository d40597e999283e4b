package utils

import (
	"fmt"
	"reflect"
)

var ColumnTag = "db"

// StructTagValues returns the column names declared on the exported fields of
// input, in field order. Embedded structs without a tag are not walked.
func StructTagValues(input any) []string {
	targetType := structType(input)

	result := make([]string, 0, targetType.NumField())
	for i := 0; i < targetType.NumField(); i++ {
		if column, ok := fieldColumn(targetType.Field(i)); ok {
			result = append(result, column)
		}
	}

	return result
}

// StructToMapOmit maps column names to field values, skipping the listed
// columns. Inserts use it to leave id and timestamps to the database.
func StructToMapOmit(input any, omit ...string) map[string]any {
	itemValue := reflect.ValueOf(input)
	if itemValue.Kind() == reflect.Ptr {
		itemValue = itemValue.Elem()
	}
	itemType := structType(input)

	result := make(map[string]any)

fieldloop:
	for i := 0; i < itemValue.NumField(); i++ {
		column, ok := fieldColumn(itemType.Field(i))
		if !ok {
			continue
		}

		for _, o := range omit {
			if o == column {
				continue fieldloop
			}
		}

		result[column] = itemValue.Field(i).Interface()
	}

	return result
}

func structType(input any) reflect.Type {
	t := reflect.TypeOf(input)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == nil || t.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return t
}

func fieldColumn(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	tagValue := field.Tag.Get(ColumnTag)
	if tagValue == "" || tagValue == "-" {
		return "", false
	}

	return tagValue, true
}

func ErrorWrapOrNil(err error, msg string) error {
	if err == nil {
		return nil
	}

	if msg == "" {
		return err
	}

	return fmt.Errorf("%s: %w", msg, err)
}
