package book

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate

	// yearPattern 4位数字,以1或2开头
	yearPattern = regexp.MustCompile(`^[12][0-9]{3}$`)
)

func init() {
	validate = validator.New()

	// 错误信息使用小写字段名(与表单字段一致)
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.ToLower(field.Name)
	})

	if err := validate.RegisterValidation("year", validateYear); err != nil {
		panic(err)
	}
}

func validateYear(fl validator.FieldLevel) bool {
	return yearPattern.MatchString(fl.Field().String())
}

// Validate 校验Draft,失败时返回*ValidationError
func (d Draft) Validate() error {
	err := validate.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Draft: d}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide a value for %q", fe.Field())
	case "max":
		return fmt.Sprintf("%q must be at most %s characters", fe.Field(), fe.Param())
	case "year":
		return fmt.Sprintf("%q must be a 4-digit year between 1000 and 2999", fe.Field())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}
