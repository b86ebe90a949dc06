package memory

import (
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kingrain94/clinic-admin-api/internal/domain"
	"github.com/kingrain94/clinic-admin-api/internal/repository"
)

var (
	dateType    = reflect.TypeOf(domain.Date{})
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// column finds the field stored under name. Column names follow the json tags,
// which match the table columns; embedded structs are searched in place.
func column(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if f.Anonymous || strings.Contains(f.Tag.Get("gorm"), "embedded") {
			if found, ok := column(fv, name); ok {
				return found, true
			}
			continue
		}
		tag, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if tag == name {
			return fv, true
		}
	}
	return reflect.Value{}, false
}

func matches[T any](row *T, filters []repository.Filter) bool {
	v := reflect.ValueOf(row).Elem()
	for _, f := range filters {
		field, ok := column(v, f.Column)
		if !ok {
			return false
		}
		if !match(field, f) {
			return false
		}
	}
	return true
}

func match(field reflect.Value, f repository.Filter) bool {
	for field.Kind() == reflect.Pointer {
		if field.IsNil() {
			return false
		}
		field = field.Elem()
	}
	want := reflect.ValueOf(f.Value)
	for want.Kind() == reflect.Pointer {
		if want.IsNil() {
			return false
		}
		want = want.Elem()
	}
	if f.Op == repository.OpContains {
		if field.Kind() != reflect.String {
			return false
		}
		return strings.Contains(strings.ToLower(field.String()), strings.ToLower(reflect.ValueOf(f.Value).String()))
	}
	c, ok := compare(field, want)
	if !ok {
		return false
	}
	switch f.Op {
	case repository.OpEq:
		return c == 0
	case repository.OpGte:
		return c >= 0
	case repository.OpLte:
		return c <= 0
	}
	return false
}

func compare(a, b reflect.Value) (int, bool) {
	switch a.Type() {
	case dateType, timeType:
		ta, ok := asTime(a)
		tb, ok2 := asTime(b)
		if !ok || !ok2 {
			return 0, false
		}
		return ta.Compare(tb), true
	case decimalType:
		if b.Type() != decimalType {
			return 0, false
		}
		return a.Interface().(decimal.Decimal).Cmp(b.Interface().(decimal.Decimal)), true
	}
	switch a.Kind() {
	case reflect.String:
		if b.Kind() != reflect.String {
			return 0, false
		}
		return strings.Compare(a.String(), b.String()), true
	case reflect.Bool:
		if b.Kind() != reflect.Bool {
			return 0, false
		}
		if a.Bool() == b.Bool() {
			return 0, true
		}
		return 1, true
	case reflect.Int, reflect.Int32, reflect.Int64:
		if !b.CanInt() {
			return 0, false
		}
		switch x, y := a.Int(), b.Int(); {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func asTime(v reflect.Value) (time.Time, bool) {
	switch v.Type() {
	case dateType:
		return v.Interface().(domain.Date).Time, true
	case timeType:
		return v.Interface().(time.Time), true
	}
	return time.Time{}, false
}

// numeric reads a decimal or integer column for Sum.
func numeric[T any](row *T, name string) decimal.Decimal {
	field, ok := column(reflect.ValueOf(row).Elem(), name)
	if !ok {
		return decimal.Zero
	}
	switch {
	case field.Type() == decimalType:
		return field.Interface().(decimal.Decimal)
	case field.CanInt():
		return decimal.NewFromInt(field.Int())
	}
	return decimal.Zero
}
