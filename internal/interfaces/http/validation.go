package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator devuelve el validador compartido; los errores usan el nombre JSON del campo.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// validateStruct aplica las etiquetas validate:"..." del DTO.
func validateStruct(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s es requerido", e.Field())
	case "uuid":
		return fmt.Sprintf("%s debe ser un UUID", e.Field())
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de: %s", e.Field(), e.Param())
	case "gt":
		return fmt.Sprintf("%s debe ser mayor que %s", e.Field(), e.Param())
	case "min":
		return fmt.Sprintf("%s debe ser al menos %s", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s excede el máximo de %s", e.Field(), e.Param())
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", e.Field())
	case "url":
		return fmt.Sprintf("%s debe ser una URL válida", e.Field())
	default:
		return fmt.Sprintf("%s no cumple %s", e.Field(), e.Tag())
	}
}

// parseBody decodifica y valida el cuerpo. Si falla ya respondió 400 y devuelve false.
func parseBody(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validateStruct(out); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	return true, nil
}

// uuidParam lee un parámetro de ruta que debe ser UUID. Si no lo es ya respondió 400.
func uuidParam(c *fiber.Ctx, name string) (string, bool, error) {
	raw := c.Params(name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: fmt.Sprintf("%s debe ser un UUID", name),
		})
	}
	return id.String(), true, nil
}
