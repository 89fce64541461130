package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"

	pkgerrors "github.com/Joechristian9/SituationalReport-sub000/pkg/errors"
)

// ── decoding ──

// normalizeValue trims strings and turns blank ones into nil
func normalizeValue(v any) any {
	s, ok := v.(string)
	if !ok {
		return v
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}

// decodeRow converts loosely typed form values ("12", 12.0, nil) into a fresh T
func decodeRow[T any](values map[string]any) (*T, error) {
	out := new(T)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Squash:           true,
		DecodeHook:       mapstructure.DecodeHookFuncType(wholeNumberHook),
		Result:           out,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(values); err != nil {
		return nil, err
	}
	return out, nil
}

var errNotWholeNumber = errors.New("must be a whole number")

// wholeNumberHook refuses JSON numbers with a fraction bound for integer
// fields; weak decoding would otherwise truncate 2.7 to 2
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	f, ok := data.(float64)
	if !ok || from.Kind() != reflect.Float64 {
		return data, nil
	}
	for to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f != math.Trunc(f) || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errNotWholeNumber
		}
	}
	return data, nil
}

func isFraction(v any) bool {
	f, ok := v.(float64)
	return ok && f != math.Trunc(f)
}

// decodeErrors pins a failed decode to the offending fields
func decodeErrors[T any](values map[string]any, prefix string, verr *pkgerrors.ValidationError) {
	found := false
	for k, v := range values {
		if _, err := decodeRow[T](map[string]any{k: v}); err != nil {
			msg := "has an invalid value"
			if isFraction(v) {
				msg = errNotWholeNumber.Error()
			}
			verr.Add(fieldPath(prefix, k), msg)
			found = true
		}
	}
	if !found {
		verr.Add(fieldPath(prefix, "row"), "could not be decoded")
	}
}

// rowID extracts the optional numeric id of a submitted row
func rowID(row map[string]any) (uint, bool, error) {
	raw, ok := row["id"]
	if !ok {
		return 0, false, nil
	}
	switch v := normalizeValue(raw).(type) {
	case nil:
		return 0, false, nil
	case float64:
		if v < 1 || v != math.Trunc(v) {
			return 0, false, fmt.Errorf("must be a positive integer")
		}
		return uint(v), true, nil
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil || n == 0 {
			return 0, false, fmt.Errorf("must be a positive integer")
		}
		return uint(n), true, nil
	default:
		return 0, false, fmt.Errorf("must be a positive integer")
	}
}

func fieldPath(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}

// ── validation ──

var (
	rowValidatorOnce sync.Once
	rowValidator     *validator.Validate
)

// getRowValidator validates on `binding` tags like gin, reporting JSON field names
func getRowValidator() *validator.Validate {
	rowValidatorOnce.Do(func() {
		v := validator.New()
		v.SetTagName("binding")
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		rowValidator = v
	})
	return rowValidator
}

// validateRecord adds one message per failing field; reports whether rec is valid
func validateRecord(rec any, prefix string, verr *pkgerrors.ValidationError) bool {
	err := getRowValidator().Struct(rec)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add(fieldPath(prefix, "row"), err.Error())
		return false
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(prefix, fe.Field()), validationMessage(fe))
	}
	return false
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return "is invalid"
	}
}

// ── row maps and diffs ──

// toRowMap renders a record with its JSON names; values come back as JSON types
func toRowMap(rec any) (map[string]any, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// ValueChange old and new value of one field
type ValueChange struct {
	Old any
	New any
}

// diffRecords compares two records over keys; only differing keys are returned
func diffRecords(before, after any, keys []string) (map[string]ValueChange, error) {
	old, err := toRowMap(before)
	if err != nil {
		return nil, err
	}
	cur, err := toRowMap(after)
	if err != nil {
		return nil, err
	}
	changes := make(map[string]ValueChange)
	for _, k := range keys {
		if !reflect.DeepEqual(old[k], cur[k]) {
			changes[k] = ValueChange{Old: old[k], New: cur[k]}
		}
	}
	return changes, nil
}
