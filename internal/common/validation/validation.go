package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func get() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Struct validates s by its `validate` tags and reports each failing field
// under its json name.
func Struct(s any) []FieldError {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Tag: "invalid"}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, FieldError{Field: e.Field(), Tag: e.Tag(), Param: e.Param()})
	}
	return out
}

func HasTag(errs []FieldError, tag string) bool {
	for _, e := range errs {
		if e.Tag == tag {
			return true
		}
	}
	return false
}
