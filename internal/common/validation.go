package common

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// "hh:mm" 24-hour clock
		_ = validate.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			if len(s) != 5 || s[2] != ':' {
				return false
			}
			h := int(s[0]-'0')*10 + int(s[1]-'0')
			m := int(s[3]-'0')*10 + int(s[4]-'0')
			return isDigits(s[:2]) && isDigits(s[3:]) && h < 24 && m < 60
		})
	})
	return validate
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks a request struct and turns validator failures into a
// *ValidationError listing the offending fields.
func Validate(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
		}
		return &ValidationError{Fields: fields}
	}
	return err
}
