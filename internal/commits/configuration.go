package commits

const defaultLogCountConstant = 10

// LogConfiguration captures the tools.log settings.
type LogConfiguration struct {
	Count int `mapstructure:"count"`
}

// DefaultLogConfiguration shows the last ten commits.
func DefaultLogConfiguration() LogConfiguration {
	return LogConfiguration{Count: defaultLogCountConstant}
}

func (configuration LogConfiguration) sanitize() LogConfiguration {
	if configuration.Count <= 0 {
		configuration.Count = defaultLogCountConstant
	}
	return configuration
}
