package returnsserver

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	returndomain "github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
	apierrors "github.com/Apurer/go-gin-returns-portal/internal/shared/errors"
)

var registerOnce sync.Once

// RegisterValidators installs the returns enum tags on gin's validator and
// reports field names by their JSON or form names. It is safe to call repeatedly.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("returnreason", func(fl validator.FieldLevel) bool {
			return returndomain.Reason(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("returnmethod", func(fl validator.FieldLevel) bool {
			return returndomain.Method(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("returnstatus", func(fl validator.FieldLevel) bool {
			return returndomain.Status(strings.ToUpper(fl.Field().String())).Valid()
		})
	})
}

// bindingProblem turns a binding failure into a validation problem listing
// every offending field, or a plain bad request for malformed bodies.
func bindingProblem(err error) apierrors.ProblemDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apierrors.ErrBadRequest.WithDetail(err.Error())
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldPath(fe)] = validationMessage(fe)
	}
	return apierrors.NewValidationProblem(fields)
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param()
	case "gt", "gte":
		return "must be at least " + minimumFor(fe)
	case "returnreason":
		return "must be one of " + joinEnum(returndomain.Reasons)
	case "returnmethod":
		return "must be one of " + joinEnum(returndomain.Methods)
	case "returnstatus":
		return "must be a known return status"
	}
	return "failed " + fe.Tag() + " validation"
}

func minimumFor(fe validator.FieldError) string {
	if fe.Tag() == "gt" {
		return "1"
	}
	return fe.Param()
}

func joinEnum[T ~string](values []T) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, string(v))
	}
	return strings.Join(parts, ", ")
}
