// Package execshell provides structured helpers for invoking external tools.
//
// ShellExecutor wraps os/exec behind a CommandRunner abstraction so that git
// and gh invocations return structured results (stdout, stderr, exit code)
// instead of raw exit statuses, log their lifecycle through zap, and stay
// substitutable in tests.
package execshell
