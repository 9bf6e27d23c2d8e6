package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleValueTypeConstant                = "bool"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleUsageEmptyTemplate               = "`%s`"
	toggleUsageFullTemplate                = "`%s` %s"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagValueSeparatorConstant             = "="
)

var toggleLiterals = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true, "t": true, "y": true,
	"false": false, "no": false, "off": false, "0": false, "f": false, "n": false,
}

// toggleRegistry remembers which flag names accept a detached yes/no value.
type toggleRegistry struct {
	mutex      sync.RWMutex
	names      map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggles = &toggleRegistry{
	names:      map[string]struct{}{},
	shorthands: map[string]struct{}{},
}

func (registry *toggleRegistry) register(name string, shorthand string) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.names[name] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

func (registry *toggleRegistry) contains(flagName string, isShorthand bool) bool {
	registry.mutex.RLock()
	defer registry.mutex.RUnlock()
	if isShorthand {
		_, exists := registry.shorthands[flagName]
		return exists
	}
	_, exists := registry.names[flagName]
	return exists
}

// AddToggleFlag registers a boolean flag that accepts yes/no style values, as in --fetch=no.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	flagSet.VarP(toggleValue, name, shorthand, formatToggleUsage(usage, defaultValue))

	if registeredFlag := flagSet.Lookup(name); registeredFlag != nil {
		registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	}

	registeredToggles.register(name, shorthand)
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf(toggleUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(toggleUsageFullTemplate, placeholder, trimmedDescription)
}

// NormalizeToggleArguments rewrites "--flag value" into "--flag=value" for registered toggles
// so pflag does not treat the value as a positional argument.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant {
			return append(normalized, arguments[index:]...)
		}

		if !expectsDetachedToggleValue(current) || index+1 >= len(arguments) {
			normalized = append(normalized, current)
			continue
		}

		nextArgument := arguments[index+1]
		if _, isToggleLiteral := toggleLiterals[strings.ToLower(strings.TrimSpace(nextArgument))]; !isToggleLiteral {
			normalized = append(normalized, current)
			continue
		}

		normalized = append(normalized, current+flagValueSeparatorConstant+nextArgument)
		index++
	}

	return normalized
}

// expectsDetachedToggleValue reports whether argument names a registered toggle without an inline value.
func expectsDetachedToggleValue(argument string) bool {
	if strings.Contains(argument, flagValueSeparatorConstant) {
		return false
	}
	if strings.HasPrefix(argument, longFlagPrefixConstant) {
		flagName := strings.TrimPrefix(argument, longFlagPrefixConstant)
		return len(flagName) > 0 && registeredToggles.contains(flagName, false)
	}
	if strings.HasPrefix(argument, shortFlagPrefixConstant) {
		shorthand := strings.TrimPrefix(argument, shortFlagPrefixConstant)
		return len(shorthand) == 1 && registeredToggles.contains(shorthand, true)
	}
	return false
}

type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}

	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || !value.currentValue {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleValueTypeConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	parsedValue, recognized := toggleLiterals[normalizedValue]
	if !recognized {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsedValue, nil
}
