package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf16"

	"astro/pkg/logger"
	"astro/pkg/model"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v4"
)

const (
	FieldName            = "name"
	FieldPhone           = "phone"
	FieldDate            = "date"
	FieldTime            = "time"
	FieldGuests          = "guests"
	FieldSpecialRequests = "specialRequests"

	MessageRequired = "Required"

	summaryPrefix = "Validation error"
)

var (
	fieldOrder = []string{FieldName, FieldPhone, FieldDate, FieldTime, FieldGuests, FieldSpecialRequests}

	requiredFields = []string{FieldName, FieldPhone, FieldDate, FieldTime, FieldGuests}

	minLengthMessages = map[string]string{
		FieldName:   "Name must be at least 2 characters",
		FieldPhone:  "Please enter a valid phone number",
		FieldDate:   "Please select a date",
		FieldTime:   "Please select a time",
		FieldGuests: "Please select number of guests",
	}
)

// ValidationError is a single rejected field. An empty Field marks a problem
// with the payload as a whole.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}
	return fmt.Sprintf("%s at %q", v.Message, v.Field)
}

type ValidationErrors []ValidationError

// Error renders all issues as one line, e.g.
// `Validation error: Required at "name"; Please select a date at "date"`.
func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	messages := make([]string, 0, len(v))
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return summaryPrefix + ": " + strings.Join(messages, "; ")
}

// Fields maps each rejected field to its message.
func (v ValidationErrors) Fields() map[string]any {
	fields := make(map[string]any, len(v))
	for _, err := range v {
		key := err.Field
		if key == "" {
			key = "body"
		}
		fields[key] = err.Message
	}
	return fields
}

type ReservationValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewReservationValidator(log *logger.Logger) *ReservationValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := v.RegisterValidation(tagMinLen, validateMinLen); err != nil {
		log.Fatal("Failed to register 'minlen' validator",
			"error", err,
		)
	}

	log.Info("Reservation validator initialized successfully")

	return &ReservationValidator{
		validate: v,
		logger:   log,
	}
}

// tagMinLen measures strings in UTF-16 code units, the way browsers and the
// booking form count characters, so an emoji counts as two.
const tagMinLen = "minlen"

func validateMinLen(fl validator.FieldLevel) bool {
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return textLength(fl.Field().String()) >= min
}

func textLength(s string) int {
	n := 0
	for _, r := range s {
		if size := utf16.RuneLen(r); size > 0 {
			n += size
		} else {
			n++
		}
	}
	return n
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return fld.Name
	}
	return name
}

// Parse turns an untyped decoded JSON payload into a ReservationInput.
// Unknown keys are ignored. On failure the error is a ValidationErrors with
// one entry per rejected field, in schema order.
func (v *ReservationValidator) Parse(payload any) (*model.ReservationInput, error) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, ValidationErrors{{
			Message: fmt.Sprintf("Expected object, received %s", typeName(payload)),
		}}
	}

	input := &model.ReservationInput{}
	targets := map[string]*string{
		FieldName:   &input.Name,
		FieldPhone:  &input.Phone,
		FieldDate:   &input.Date,
		FieldTime:   &input.Time,
		FieldGuests: &input.Guests,
	}

	issues := make(map[string]string)
	for _, field := range requiredFields {
		raw, present := obj[field]
		if !present {
			issues[field] = MessageRequired
			continue
		}
		s, ok := raw.(string)
		if !ok {
			issues[field] = expectedString(raw)
			continue
		}
		*targets[field] = s
	}

	if raw, present := obj[FieldSpecialRequests]; present {
		if s, ok := raw.(string); ok {
			input.SpecialRequests = null.StringFrom(s)
		} else {
			issues[FieldSpecialRequests] = expectedString(raw)
		}
	}

	if err := v.validate.Struct(input); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, err
		}
		for _, fe := range validationErrs {
			if _, seen := issues[fe.Field()]; seen {
				continue
			}
			issues[fe.Field()] = translateFieldError(fe)
		}
	}

	if len(issues) > 0 {
		v.logger.Debug("Reservation payload rejected", "fields", len(issues))
		return nil, orderIssues(issues)
	}
	return input, nil
}

func translateFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case tagMinLen, "min":
		if msg, ok := minLengthMessages[fe.Field()]; ok {
			return msg
		}
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "required":
		return MessageRequired
	default:
		return fmt.Sprintf("failed on '%s' validation", fe.Tag())
	}
}

func orderIssues(issues map[string]string) ValidationErrors {
	out := make(ValidationErrors, 0, len(issues))
	for _, field := range fieldOrder {
		if msg, ok := issues[field]; ok {
			out = append(out, ValidationError{Field: field, Message: msg})
		}
	}
	return out
}

func expectedString(value any) string {
	return fmt.Sprintf("Expected string, received %s", typeName(value))
}

func typeName(value any) string {
	switch value.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, float32, int, int64, json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", value)
	}
}
