package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"vidsocial/domain/model"
)

// RegisterValidators adds the "objectid" rule to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseID(fl.Field().String())
		return ok
	})
}

// bindingDetails turns validator failures into readable messages.
func bindingDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "objectid":
			out = append(out, fmt.Sprintf("%s must be a valid id", lowerFirst(fe.Field())))
		case "oneof":
			out = append(out, fmt.Sprintf("%s must be one of %s", lowerFirst(fe.Field()), fe.Param()))
		case "required":
			out = append(out, fmt.Sprintf("%s is required", lowerFirst(fe.Field())))
		default:
			out = append(out, fmt.Sprintf("%s is invalid", lowerFirst(fe.Field())))
		}
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
