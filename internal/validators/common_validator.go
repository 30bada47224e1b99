package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("uuid_id", validateUUID)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("language_code", validateLanguageCode)
	validate.RegisterValidation("alert_metric", validateAlertMetric)
	validate.RegisterValidation("alert_operator", validateAlertOperator)
	validate.RegisterValidation("alert_channel", validateAlertChannel)
	validate.RegisterValidation("driver_status", validateDriverStatus)
	validate.RegisterValidation("user_role", validateUserRole)
	validate.RegisterValidation("date_only", validateDateOnly)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// Fields flattens the errors into a field to message map for response
// payloads.
func (v ValidationErrors) Fields() map[string]string {
	fields := make(map[string]string, len(v))
	for _, err := range v {
		fields[err.Field] = err.Message
	}
	return fields
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "uuid_id":
		return "Invalid ID format"
	case "phone_number":
		return "Invalid phone number format"
	case "strong_password":
		return "Password must contain uppercase, lowercase, number, and special character"
	case "language_code":
		return "Invalid language code"
	case "alert_metric":
		return "Unknown alert metric"
	case "alert_operator":
		return "Operator must be one of lt, lte, gt, gte"
	case "alert_channel":
		return "Channel must be sms or call"
	case "driver_status":
		return "Status must be active, inactive, or suspended"
	case "user_role":
		return "Role must be admin, manager, or viewer"
	case "date_only":
		return "Date must use YYYY-MM-DD format"
	default:
		return fmt.Sprintf("Validation failed for %s", err.Field())
	}
}

// Custom validation functions
func validateUUID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Let required tag handle empty values
	}
	_, err := uuid.Parse(value)
	return err == nil
}

func validatePhoneNumber(fl validator.FieldLevel) bool {
	phone := fl.Field().String()
	if phone == "" {
		return true
	}

	// E.164 format validation
	phoneRegex := regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	return phoneRegex.MatchString(phone)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 || len(password) > 128 {
		return false
	}

	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasNumber && hasSpecial
}

func validateLanguageCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if code == "" {
		return true
	}

	langRegex := regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)
	return langRegex.MatchString(code)
}

func validateAlertMetric(fl validator.FieldLevel) bool {
	metric := fl.Field().String()
	validMetrics := []string{
		"acceptance_rate", "cancellation_rate", "completion_rate",
		"feedback_score", "trip_volume_index", "idle_ratio",
	}

	for _, m := range validMetrics {
		if metric == m {
			return true
		}
	}
	return false
}

func validateAlertOperator(fl validator.FieldLevel) bool {
	op := fl.Field().String()
	return op == "lt" || op == "lte" || op == "gt" || op == "gte"
}

func validateAlertChannel(fl validator.FieldLevel) bool {
	channel := fl.Field().String()
	return channel == "sms" || channel == "call"
}

func validateDriverStatus(fl validator.FieldLevel) bool {
	status := fl.Field().String()
	return status == "active" || status == "inactive" || status == "suspended"
}

func validateUserRole(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "admin" || role == "manager" || role == "viewer"
}

func validateDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	dateRegex := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	return dateRegex.MatchString(value)
}

// Helper functions for common validations
func IsValidEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

func SanitizeInput(input string) string {
	// Remove HTML tags and trim whitespace
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}
