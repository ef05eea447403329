package http

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/landed-cost-api/internal/application/dto"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

// decimalRules reglas para decimal.Decimal; el validador no puede convertir el tipo, se lee el campo directo.
var decimalRules = map[string]func(decimal.Decimal) bool{
	"nonzero_decimal":     func(d decimal.Decimal) bool { return !d.IsZero() },
	"positive_decimal":    func(d decimal.Decimal) bool { return d.IsPositive() },
	"nonnegative_decimal": func(d decimal.Decimal) bool { return !d.IsNegative() },
}

func initValidator() (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	for tag, rule := range decimalRules {
		rule := rule
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			return ok && rule(d)
		})
		if err != nil {
			return nil, fmt.Errorf("registrar %s: %w", tag, err)
		}
	}
	return v, nil
}

func getValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidator()
	})
	return validate, errValidate
}

// bindBody lee el body JSON en out y aplica las reglas de validación.
// Devuelve el error a responder con 400, o nil si el body es válido.
func bindBody(c *fiber.Ctx, out any) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	v, err := getValidator()
	if err != nil {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	}
	if err := v.Struct(out); err != nil {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("campo %s no cumple la regla %s", fe.Namespace(), fe.Tag())
	}
	return "datos inválidos"
}
