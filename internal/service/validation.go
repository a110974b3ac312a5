package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Tomlord1122/todo-lists-api/internal/repository"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

var fieldErrors = map[string]*ValidationError{
	"title": NewFieldError(MsgTitleRequired),
	"name":  NewFieldError(MsgListNameRequired),
	"page":  {Message: MsgInvalidPage},
	"limit": {Message: MsgInvalidLimit},
}

// validateStruct runs the struct tags and reports the first failure as a
// ValidationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	field := fieldErrs[0].Field()
	if known, ok := fieldErrors[field]; ok {
		vErr := *known
		return &vErr
	}
	return &ValidationError{Message: fmt.Sprintf("%s is invalid", field)}
}

// Pagination selects a page of a listing. Page is 1-based and capped so
// that (Page-1)*Limit fits in an int32 offset.
type Pagination struct {
	Page  int `json:"page" validate:"min=1,max=21474836"`
	Limit int `json:"limit" validate:"min=1,max=100"`
}

func DefaultPagination() Pagination {
	return Pagination{Page: DefaultPage, Limit: DefaultLimit}
}

func (p Pagination) window() repository.Page {
	return repository.Page{Offset: (p.Page - 1) * p.Limit, Limit: p.Limit}
}
