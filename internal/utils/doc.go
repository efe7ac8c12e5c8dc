// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper configuration, environment variables, and zap logging for
// the CLI, together with accessors for values carried through command
// execution contexts.
package utils
