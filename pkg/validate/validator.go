package validate

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Gunvolt24/logistics/internal/domain"
	"github.com/Gunvolt24/logistics/internal/ports"
	"github.com/go-playground/validator/v10"
)

var (
	_ ports.OrderValidator       = (*Validator)(nil)
	_ ports.CredentialsValidator = (*Validator)(nil)
)

// ErrInvalidInput — базовая (sentinel error) ошибка валидации входных данных.
var ErrInvalidInput = errors.New("input validation failed")

// Validator — проверка входных DTO по тегам `validate`.
// Возвращает ErrInvalidInput (с обёрнутой причиной) при любой проблеме.
type Validator struct {
	v *validator.Validate
}

// NewValidator — конструктор; в сообщениях используются json-имена полей.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{v: v}
}

func (v *Validator) ValidateCreate(_ context.Context, input *domain.CreateOrderInput) error {
	if input == nil {
		return fmt.Errorf("%w: заказ не может быть nil", ErrInvalidInput)
	}
	return v.check(input)
}

func (v *Validator) ValidateRegister(_ context.Context, input *domain.RegisterInput) error {
	if input == nil {
		return fmt.Errorf("%w: данные регистрации не могут быть nil", ErrInvalidInput)
	}
	return v.check(input)
}

func (v *Validator) ValidateLogin(_ context.Context, input *domain.LoginInput) error {
	if input == nil {
		return fmt.Errorf("%w: данные входа не могут быть nil", ErrInvalidInput)
	}
	return v.check(input)
}

// ValidateStatus — статус из запроса должен быть одним из известных.
func ValidateStatus(status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: status %q неизвестен", ErrInvalidInput, status)
	}
	return nil
}

// ValidateRole — роль из запроса должна быть одной из известных.
func ValidateRole(role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: role %q неизвестна", ErrInvalidInput, role)
	}
	return nil
}

func (v *Validator) check(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " обязателен"
	case "min":
		return fmt.Sprintf("%s: минимум %s символов", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s: максимум %s символов", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " некорректен"
	default:
		return fmt.Sprintf("%s: нарушено правило %s", fe.Field(), fe.Tag())
	}
}
