package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/studiowebux/carcli/internal/types"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance returns the shared validator, keyed by json field names
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// ValidateDraft checks that every draft field is present and in range
func ValidateDraft(draft types.CarDraft) Errors {
	err := validatorInstance().Struct(draft)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{"draft": err.Error()}
	}

	result := make(Errors, len(fieldErrs))
	for _, fe := range fieldErrs {
		result[fe.Field()] = draftMessage(fe)
	}
	return result
}

// draftMessage renders a validator failure in the API's message style
func draftMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%q must be greater than %s", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%q must be greater than or equal to %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q must be less than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%q failed %s validation", fe.Field(), fe.Tag())
	}
}

// ParseDraft converts form text keyed by wire field name into a draft.
// Numeric parse failures are reported per field and merged with ValidateDraft's result.
func ParseDraft(fields map[string]string) (types.CarDraft, Errors) {
	var errs Errors
	get := func(name string) string {
		return strings.TrimSpace(fields[name])
	}

	draft := types.CarDraft{
		Make:             get(types.FieldMake),
		Model:            get(types.FieldModel),
		Size:             get(types.FieldSize),
		Style:            get(types.FieldStyle),
		TransmissionType: get(types.FieldTransmissionType),
	}

	if raw := get(types.FieldPrice); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = errs.Merge(Errors{types.FieldPrice: fmt.Sprintf("%q must be a number", types.FieldPrice)})
		} else {
			draft.Price = price
		}
	}

	if raw := get(types.FieldReleaseDate); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			errs = errs.Merge(Errors{types.FieldReleaseDate: fmt.Sprintf("%q must be a year", types.FieldReleaseDate)})
		} else {
			draft.ReleaseDate = year
		}
	}

	errs = errs.Merge(ValidateDraft(draft))
	if !errs.HasErrors() {
		return draft, nil
	}
	return draft, errs
}
