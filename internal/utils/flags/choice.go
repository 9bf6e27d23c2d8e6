package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix   = "<"
	choicePlaceholderSuffix   = ">"
	choiceSeparatorLiteral    = "|"
	choiceUsageEmptyTemplate  = "`%s`"
	choiceUsageFullTemplate   = "`%s` %s"
	choiceValueTypeConstant   = "string"
	choiceParseErrorTemplate  = "invalid value %q (expected one of %s)"
	choiceListSeparatorString = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// AddChoiceFlag registers a string flag restricted to choices. Values are stored lowercased.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &choiceFlagValue{target: target, choices: normalizeChoices(choices)}
	value.current = strings.ToLower(strings.TrimSpace(defaultChoice))
	if target != nil {
		*target = value.current
	}

	flagSet.Var(value, name, FormatChoiceUsage(defaultChoice, choices, description))
}

type choiceFlagValue struct {
	current string
	target  *string
	choices []string
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for _, choice := range value.choices {
		if choice != normalizedValue {
			continue
		}
		value.current = normalizedValue
		if value.target != nil {
			*value.target = normalizedValue
		}
		return nil
	}
	return fmt.Errorf(choiceParseErrorTemplate, rawValue, strings.Join(value.choices, choiceListSeparatorString))
}

func (value *choiceFlagValue) String() string {
	if value == nil {
		return ""
	}
	return value.current
}

func (value *choiceFlagValue) Type() string {
	return choiceValueTypeConstant
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := normalizeChoices(choices)
	for index, choice := range highlighted {
		if choice == normalizedDefault {
			highlighted[index] = strings.ToUpper(choice)
		}
	}
	return highlighted
}
