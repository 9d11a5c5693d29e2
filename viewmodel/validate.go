package viewmodel

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"rama-crm/menu"
	"rama-crm/models"
	"rama-crm/utils"

	"github.com/go-playground/validator/v10"
	"golang.org/x/exp/slices"
)

// Custom tags on top of the stock ones:
//
//	filled         non-blank after trimming
//	isodate        parses with utils.ParseISODate
//	amount         non-negative decimal
//	employee_role  a role an admin may assign
//	user_role      any known role
//	task_status    one of models.TaskStatuses
//	priority       one of models.Priorities
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("filled", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, ok := utils.ParseISODate(fl.Field().String())
		return ok
	})
	v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		n, err := strconv.ParseFloat(strings.TrimSpace(fl.Field().String()), 64)
		return err == nil && n >= 0
	})
	v.RegisterValidation("employee_role", func(fl validator.FieldLevel) bool {
		return slices.Contains(employeeRoles, menu.ParseRole(fl.Field().String()))
	})
	v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		return menu.ParseRole(fl.Field().String()) != menu.RoleUnknown
	})
	v.RegisterValidation("task_status", func(fl validator.FieldLevel) bool {
		return models.TaskStatus(fl.Field().String()).Valid()
	})
	v.RegisterValidation("priority", func(fl validator.FieldLevel) bool {
		return models.Priority(fl.Field().String()).Valid()
	})
	return v
}

// messages maps a field to the message shown for each failed tag.
type messages map[string]map[string]string

// check validates form and turns the failures into field errors, one message
// per field.
func check(form any, msgs messages) FieldErrors {
	errs := FieldErrors{}

	var failures validator.ValidationErrors
	if !errors.As(validate.Struct(form), &failures) {
		return errs
	}
	for _, fe := range failures {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		msg := msgs[field][fe.Tag()]
		if msg == "" {
			msg = fmt.Sprintf("The %s field is invalid.", strings.ReplaceAll(field, "_", " "))
		}
		errs[field] = []string{msg}
	}
	return errs
}
