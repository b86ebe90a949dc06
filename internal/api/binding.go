package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kingrain94/clinic-admin-api/internal/api/dto"
)

// Binding errors name fields by their json tag, the name clients send.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

type draftRequest[D any] interface {
	ToDraft() D
}

type patchRequest[P any] interface {
	ToPatch() P
}

// fieldDecodeError is a body member whose value its type rejected, such as
// a malformed date or amount.
type fieldDecodeError struct {
	field string
	err   error
}

func (e *fieldDecodeError) Error() string { return e.field + ": " + e.err.Error() }
func (e *fieldDecodeError) Unwrap() error { return e.err }

// bindJSON decodes and validates the body into R. Errors raised by a field's
// own decoder are tagged with the json name of that field.
func bindJSON[R any](c *gin.Context) (R, error) {
	var req R
	err := c.ShouldBindBodyWith(&req, binding.JSON)
	if err == nil {
		return req, nil
	}
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	if errors.As(err, &verrs) || errors.As(err, &typeErr) || errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) {
		return req, err
	}
	body, _ := c.Get(gin.BodyBytesKey)
	raw, _ := body.([]byte)
	return req, &fieldDecodeError{field: failingField[R](raw), err: err}
}

// failingField returns the first top-level member of body that does not
// decode into the matching field of R.
func failingField[R any](body []byte) string {
	var members map[string]json.RawMessage
	if json.Unmarshal(body, &members) != nil {
		return ""
	}
	return firstFailing(reflect.TypeOf((*R)(nil)).Elem(), members)
}

func firstFailing(t reflect.Type, members map[string]json.RawMessage) string {
	if t.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if f.Anonymous && name == "" {
			if found := firstFailing(f.Type, members); found != "" {
				return found
			}
			continue
		}
		raw, ok := members[name]
		if name == "" || name == "-" || !ok {
			continue
		}
		if json.Unmarshal(raw, reflect.New(f.Type).Interface()) != nil {
			return name
		}
	}
	return ""
}

func bindDraft[R draftRequest[D], D any](c *gin.Context) (D, error) {
	req, err := bindJSON[R](c)
	if err != nil {
		var zero D
		return zero, err
	}
	return req.ToDraft(), nil
}

func bindPatch[R patchRequest[P], P any](c *gin.Context) (P, error) {
	req, err := bindJSON[R](c)
	if err != nil {
		var zero P
		return zero, err
	}
	return req.ToPatch(), nil
}

func validationMessage(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "invalid email"
	case "uuid":
		return "must be a valid UUID"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return fmt.Sprintf("must have at most %s%s", fe.Param(), unit)
	case "min":
		return fmt.Sprintf("must have at least %s%s", fe.Param(), unit)
	case "len":
		return fmt.Sprintf("must have exactly %s%s", fe.Param(), unit)
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return "is invalid"
}

// bindError answers a request whose body could not be bound.
func (h *BaseHandler) bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	var fieldErr *fieldDecodeError
	switch {
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = validationMessage(fe)
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "validation failed", Errors: fields})
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if i := strings.LastIndex(field, "."); i >= 0 {
			field = field[i+1:]
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{
			Detail: "validation failed",
			Errors: map[string]string{field: "must be a " + typeErr.Type.String()},
		})
	case errors.Is(err, io.EOF):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "request body is required"})
	case errors.As(err, &syntaxErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "malformed JSON body"})
	case errors.As(err, &fieldErr) && fieldErr.field != "":
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{
			Detail: "validation failed",
			Errors: map[string]string{fieldErr.field: "has an invalid value"},
		})
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.Error{Detail: "invalid request body"})
	}
}
