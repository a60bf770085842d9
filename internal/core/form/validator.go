package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{10}$`)

// validate is shared by every schema; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("form"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the struct tags of s and converts every violation into
// a field-scoped message. messages overrides the default text per "field.tag".
func validateStruct(s any, messages map[string]string) Errors {
	errs := Errors{}
	err := validate.Struct(s)
	if err == nil {
		return errs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs.Add("_form", err.Error())
		return errs
	}
	for _, fe := range ve {
		field := fe.Field()
		if msg, ok := messages[field+"."+fe.Tag()]; ok {
			errs.Add(field, msg)
			continue
		}
		errs.Add(field, fieldError(fe))
	}
	return errs
}

// fieldError converts a single FieldError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return "Invalid email"
	case "url":
		return "Invalid URL"
	case "phone10":
		return field + " must be 10 digits"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// bind copies text values into the exported fields of dst (a pointer to a
// struct) using their `form` tag. Integer fields are parsed; a value that does
// not parse is reported against its field and the field is left at zero.
func bind(in Input, dst any) Errors {
	errs := Errors{}
	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		name, _, _ := strings.Cut(sf.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw, ok := in.Fields[name]
		if !ok {
			continue
		}
		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int64:
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				errs.Add(name, name+" must be a whole number")
				continue
			}
			fv.SetInt(n)
		}
	}
	return errs
}
