package csvimport

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/shopspring/decimal"
)

// FieldType represents the expected type of a field
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeInt     FieldType = "int"
	TypeDecimal FieldType = "decimal"
)

// FieldRule defines validation rules for a column
type FieldRule struct {
	Column      string
	Type        FieldType
	Required    bool
	MaxLength   int
	MinValue    *decimal.Decimal
	MaxValue    *decimal.Decimal
	Pattern     *regexp.Regexp
	PatternDesc string
	Unique      bool
	Positive    bool
}

// FieldRuleBuilder helps build field rules fluently
type FieldRuleBuilder struct {
	rule FieldRule
}

// Field creates a new field rule builder
func Field(column string) *FieldRuleBuilder {
	return &FieldRuleBuilder{
		rule: FieldRule{
			Column: column,
			Type:   TypeString,
		},
	}
}

// Required marks the field as required
func (b *FieldRuleBuilder) Required() *FieldRuleBuilder {
	b.rule.Required = true
	return b
}

// Int sets the field type to integer
func (b *FieldRuleBuilder) Int() *FieldRuleBuilder {
	b.rule.Type = TypeInt
	return b
}

// Decimal sets the field type to decimal
func (b *FieldRuleBuilder) Decimal() *FieldRuleBuilder {
	b.rule.Type = TypeDecimal
	return b
}

// MaxLength sets the maximum length
func (b *FieldRuleBuilder) MaxLength(n int) *FieldRuleBuilder {
	b.rule.MaxLength = n
	return b
}

// MinValue sets the minimum numeric value
func (b *FieldRuleBuilder) MinValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MinValue = &v
	return b
}

// MaxValue sets the maximum numeric value
func (b *FieldRuleBuilder) MaxValue(v decimal.Decimal) *FieldRuleBuilder {
	b.rule.MaxValue = &v
	return b
}

// Positive requires a numeric value strictly greater than zero
func (b *FieldRuleBuilder) Positive() *FieldRuleBuilder {
	b.rule.Positive = true
	return b
}

// Pattern sets a regex pattern for validation
func (b *FieldRuleBuilder) Pattern(pattern, description string) *FieldRuleBuilder {
	b.rule.Pattern = regexp.MustCompile(pattern)
	b.rule.PatternDesc = description
	return b
}

// Unique marks the field as unique within the file
func (b *FieldRuleBuilder) Unique() *FieldRuleBuilder {
	b.rule.Unique = true
	return b
}

// Build returns the built field rule
func (b *FieldRuleBuilder) Build() FieldRule {
	return b.rule
}

// FieldValidator validates rows against a set of field rules
type FieldValidator struct {
	rules       []FieldRule
	uniqueCheck map[string]map[string]int // column -> value -> first row number
	errors      *ErrorCollection
}

// NewFieldValidator creates a new field validator
func NewFieldValidator(rules []FieldRule, maxErrors int) *FieldValidator {
	return &FieldValidator{
		rules:       rules,
		uniqueCheck: make(map[string]map[string]int),
		errors:      NewErrorCollection(maxErrors),
	}
}

// ValidateRow validates all fields in a row. Returns true when the row passed.
func (v *FieldValidator) ValidateRow(row *Row) bool {
	hasError := false

	for _, rule := range v.rules {
		value := row.Get(rule.Column)

		if rule.Required && value == "" {
			v.errors.AddRequiredError(row.LineNumber, rule.Column)
			hasError = true
			continue
		}
		if value == "" {
			continue
		}

		if err := validateType(value, rule.Type); err != nil {
			v.errors.AddTypeError(row.LineNumber, rule.Column, string(rule.Type), value)
			hasError = true
			continue
		}

		if rule.MaxLength > 0 && len(value) > rule.MaxLength {
			v.errors.AddLengthError(row.LineNumber, rule.Column, rule.MaxLength)
			hasError = true
		}

		if rule.Type == TypeInt || rule.Type == TypeDecimal {
			if msg := validateRange(value, rule.MinValue, rule.MaxValue, rule.Positive); msg != "" {
				v.errors.AddRangeError(row.LineNumber, rule.Column, msg)
				hasError = true
			}
		}

		if rule.Pattern != nil && !rule.Pattern.MatchString(value) {
			v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeImportPatternMismatch,
				fmt.Sprintf("value does not match expected format: %s", rule.PatternDesc), value))
			hasError = true
		}

		if rule.Unique {
			if v.uniqueCheck[rule.Column] == nil {
				v.uniqueCheck[rule.Column] = make(map[string]int)
			}
			if firstRow, exists := v.uniqueCheck[rule.Column][value]; exists {
				v.errors.Add(NewRowErrorWithValue(row.LineNumber, rule.Column, ErrCodeImportDuplicateInFile,
					fmt.Sprintf("duplicate value '%s' (first seen in row %d)", value, firstRow), value))
				hasError = true
			} else {
				v.uniqueCheck[rule.Column][value] = row.LineNumber
			}
		}
	}

	return !hasError
}

// Errors returns the accumulated errors
func (v *FieldValidator) Errors() *ErrorCollection {
	return v.errors
}

func validateType(value string, fieldType FieldType) error {
	switch fieldType {
	case TypeInt:
		_, err := strconv.ParseInt(value, 10, 64)
		return err
	case TypeDecimal:
		_, err := decimal.NewFromString(value)
		return err
	default:
		return nil
	}
}

func validateRange(value string, min, max *decimal.Decimal, positive bool) string {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return ""
	}
	if positive && d.LessThanOrEqual(decimal.Zero) {
		return "value must be greater than zero"
	}
	if min != nil && d.LessThan(*min) {
		return fmt.Sprintf("value must be at least %s", min.String())
	}
	if max != nil && d.GreaterThan(*max) {
		return fmt.Sprintf("value must be at most %s", max.String())
	}
	return ""
}
