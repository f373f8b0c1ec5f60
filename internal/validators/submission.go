package validators

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission checks payload against fields in field order and
// returns one violation per failed field. An empty result means the payload
// is valid. Keys of payload that match no field are ignored.
func ValidateSubmission(fields []models.Field, payload map[string]any) []models.Violation {
	var violations []models.Violation
	for _, f := range fields {
		value, present := payload[f.Name]
		if !present || isEmpty(f, value) {
			if f.Required {
				violations = append(violations, violation(f, "%s is required", f.DisplayName()))
			}
			continue
		}

		if v, failed := checkValue(f, value); failed {
			violations = append(violations, v)
		}
	}
	return violations
}

func checkValue(f models.Field, value any) (models.Violation, bool) {
	label := f.DisplayName()

	switch f.Type {
	case models.FieldEmail:
		s, ok := value.(string)
		if !ok || !emailPattern.MatchString(strings.TrimSpace(s)) {
			return violation(f, "%s must be a valid email address", label), true
		}

	case models.FieldCheckbox:
		if _, _, err := schema.ParseBool(value); err != nil {
			return violation(f, "%s must be checked or unchecked", label), true
		}

	case models.FieldNumber:
		n, ok := toNumber(value)
		if !ok {
			return violation(f, "%s must be a number", label), true
		}
		if f.Validation == nil {
			break
		}
		if lower := f.Validation.Min; lower != nil && n < *lower {
			return violation(f, "%s must be at least %s", label, formatNumber(*lower)), true
		}
		if upper := f.Validation.Max; upper != nil && n > *upper {
			return violation(f, "%s must be at most %s", label, formatNumber(*upper)), true
		}

	case models.FieldText, models.FieldTextarea:
		if f.Validation == nil {
			break
		}
		s := toText(value)
		length := float64(utf8.RuneCountInString(s))
		if lower := f.Validation.Min; lower != nil && length < *lower {
			return violation(f, "%s must be at least %s characters", label, formatNumber(*lower)), true
		}
		if upper := f.Validation.Max; upper != nil && length > *upper {
			return violation(f, "%s must be at most %s characters", label, formatNumber(*upper)), true
		}
		if pattern := f.Validation.Pattern; pattern != "" {
			re, err := regexp.Compile(pattern)
			if err != nil || !re.MatchString(s) {
				if f.Validation.Message != "" {
					return models.Violation{Field: f.Name, Message: f.Validation.Message}, true
				}
				return violation(f, "%s format is invalid", label), true
			}
		}
	}

	return models.Violation{}, false
}

func violation(f models.Field, format string, args ...any) models.Violation {
	return models.Violation{Field: f.Name, Message: fmt.Sprintf(format, args...)}
}

// isEmpty reports whether a present value counts as "not given". An
// unticked checkbox is not given, read the same way as its projected column.
func isEmpty(f models.Field, value any) bool {
	if f.Type == models.FieldCheckbox {
		ticked, set, err := schema.ParseBool(value)
		return err == nil && (!set || !ticked)
	}

	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []any:
		return len(v) == 0
	case []string:
		return len(v) == 0
	default:
		return false
	}
}

func toNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case json.Number:
		n, err := v.Float64()
		return n, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return n, err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
	default:
		return 0, false
	}
}

func toText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
