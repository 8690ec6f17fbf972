package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/PierrickDossin/AymanProject/internal/service"
	"github.com/PierrickDossin/AymanProject/pkg/utils"
)

var validationOnce sync.Once

// registerValidation makes validator report JSON field names.
func registerValidation() {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// respondError maps an error kind to its status and writes the body.
func respondError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	var invalid *service.ValidationError

	switch {
	case errors.As(err, &fieldErrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation error", "details": fieldDetails(fieldErrs)})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Error(), "details": invalid.Details})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		utils.Log.Error("Unhandled error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func fieldDetails(errs validator.ValidationErrors) []service.FieldError {
	out := make([]service.FieldError, 0, len(errs))
	for _, fe := range errs {
		field := fe.Field()
		// nested items keep their path, e.g. items[0].name
		if ns := fe.Namespace(); strings.Contains(ns, ".") {
			field = ns[strings.Index(ns, ".")+1:]
		}
		out = append(out, service.FieldError{
			Field:   field,
			Rule:    fe.Tag(),
			Param:   fe.Param(),
			Message: fieldMessage(field, fe),
		})
	}
	return out
}

func fieldMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return field + " must be a YYYY-MM-DD date"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		respondError(c, err)
		return false
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Validation error",
		"details": []service.FieldError{{Field: "body", Rule: "json", Message: err.Error()}},
	})
	return false
}

// requiredQuery reads the named query parameters. When any is missing it
// answers 400 naming all of them.
func requiredQuery(c *gin.Context, keys ...string) ([]string, bool) {
	values := make([]string, len(keys))
	missing := false
	for i, k := range keys {
		values[i] = strings.TrimSpace(c.Query(k))
		if values[i] == "" {
			missing = true
		}
	}
	if missing {
		c.JSON(http.StatusBadRequest, gin.H{"error": requiredMessage(keys)})
		return nil, false
	}
	return values, true
}

func requiredMessage(keys []string) string {
	switch len(keys) {
	case 1:
		return keys[0] + " is required"
	case 2:
		return keys[0] + " and " + keys[1] + " are required"
	default:
		return strings.Join(keys[:len(keys)-1], ", ") + ", and " + keys[len(keys)-1] + " are required"
	}
}
