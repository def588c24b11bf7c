package handler

import (
	"errors"
	"reflect"

	"catalogo/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 or gt=0 work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// On failure the error is attached for middleware.ErrorHandler and the caller
// must return without writing a response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		fallo(c, apierror.BadRequest("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var ves validator.ValidationErrors
		if !errors.As(err, &ves) {
			fallo(c, err)
			return false
		}
		fields := make(map[string]string, len(ves))
		for _, fe := range ves {
			fields[fe.Field()] = fe.Tag()
		}
		fallo(c, apierror.Invalid(fields))
		return false
	}
	return true
}

// paramID parses the :id path parameter. A malformed id is reported as a 400.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fallo(c, apierror.BadRequest("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

// fallo hands err to middleware.ErrorHandler, which picks the status.
func fallo(c *gin.Context, err error) {
	_ = c.Error(err)
}
