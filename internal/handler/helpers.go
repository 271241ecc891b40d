package handler

import (
	"errors"
	"net/http"
	"reflect"

	"sorty/internal/envelope"
	"sorty/internal/middleware"
	"sorty/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// decimal.Decimal is validated as its float value so tags like min=0 work.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs the validator tags.
// On failure it writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Error("JSON inválido: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, envelope.Error("Parámetros inválidos: "+err.Error()))
		return false
	}
	return runValidation(c, req)
}

func runValidation(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, envelope.Error(err.Error()))
			return false
		}
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, envelope.Validation(fields))
		return false
	}
	return true
}

// parseID reads a uuid path parameter, answering 400 if malformed.
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, envelope.Error("ID inválido"))
		return uuid.Nil, false
	}
	return id, true
}

// actorID returns the authenticated user's id.
func actorID(c *gin.Context) uuid.UUID {
	if claims := middleware.GetClaims(c); claims != nil {
		return claims.ActorID()
	}
	return uuid.Nil
}

// respondError maps service error kinds to HTTP status codes. Anything
// unrecognised is handed to the ErrorHandler middleware as a 500.
func respondError(c *gin.Context, err error) {
	status := 0
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		status = http.StatusUnauthorized
	}
	if status == 0 {
		_ = c.Error(err)
		return
	}
	c.JSON(status, envelope.Error(err.Error()))
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope.Success(data))
}

func created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope.Success(data))
}
