// Package serdser contains the serialization and deserialization
// helpers which are shared by the resource packages. Binding errors
// and model.FieldErrors are both reported as a json object which maps
// each invalid field name to the list of its error messages.
package serdser

import (
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/car-management/pkg/core/cerr"
	"github.com/momeni/car-management/pkg/core/log"
	"github.com/momeni/car-management/pkg/core/model"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

// fieldName reports fields by the names which clients use for them.
func fieldName(f reflect.StructField) string {
	for _, key := range []string{"json", "uri", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// Bind deserializes the request into `req` using the `b` binding and
// validates it. If binding fails, the error response is written and
// false is returned.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	err := c.ShouldBindWith(req, b)
	if err == nil {
		return true
	}
	var ive *validator.InvalidValidationError
	var ves validator.ValidationErrors
	switch {
	case errors.As(err, &ive):
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": ive.Error(),
		})
	case errors.As(err, &ves):
		var nameToErrs map[string][]string
		for _, ferr := range ves {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr writes `err` as the response. The status code is taken from
// the wrapped *cerr.Error (if any) and defaults to 500. A wrapped
// model.FieldErrors is written as a field to messages map, while other
// errors are written as {"detail": "..."}.
// Server errors are logged, so their details are not only visible to
// the clients.
func SerErr(c *gin.Context, err error) {
	status := cerr.StatusCode(err)
	var fe model.FieldErrors
	if errors.As(err, &fe) {
		c.JSON(status, map[string][]string(fe))
		return
	}
	detail := err.Error()
	var ce *cerr.Error
	if errors.As(err, &ce) {
		detail = ce.Err.Error()
	}
	if status >= http.StatusInternalServerError {
		log.Error(
			c.Request.Context(), "request failed",
			slog.String("path", c.Request.URL.Path), log.Err("err", err),
		)
	}
	c.JSON(status, gin.H{
		"detail": detail,
	})
}
