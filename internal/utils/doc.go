// Package utils exposes helpers shared by every claw-git command.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// CLAWGIT_ environment overrides through Viper. LoggerFactory builds the zap
// diagnostic logger, optionally backed by a lumberjack rotating file.
package utils
