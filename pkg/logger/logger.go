package logger

import (
	"fmt"
	"log"
	"time"
)

// Logger receives sync progress events.
type Logger interface {
	Upload(source, target string)
	Delete(target string)
	Skip(target string)
	Error(operation, target string, err error)
	Debug(format string, args ...any)
}

// SyncLogger prints aws-cli style operation lines. In dry-run mode every line
// is prefixed so output can never be mistaken for applied changes. Quiet mode
// suppresses everything except errors.
type SyncLogger struct {
	IsDryRun bool
	IsQuiet  bool
}

func (l *SyncLogger) Upload(source, target string) {
	if l.IsQuiet {
		return
	}
	fmt.Printf("%supload: %s to %s\n", l.prefix(), source, target)
}

func (l *SyncLogger) Delete(target string) {
	if l.IsQuiet {
		return
	}
	fmt.Printf("%sdelete: %s\n", l.prefix(), target)
}

func (l *SyncLogger) Skip(target string) {
	// Unchanged objects stay silent, matching aws s3 sync.
}

func (l *SyncLogger) Error(operation, target string, err error) {
	log.Printf("ERROR %s %s: %v", operation, target, err)
}

func (l *SyncLogger) Debug(format string, args ...any) {
}

func (l *SyncLogger) prefix() string {
	if l.IsDryRun {
		return "(dryrun) "
	}
	return ""
}

// PrintSummary prints run totals. Quiet runs only report when something
// failed.
func (l *SyncLogger) PrintSummary(uploaded, deleted, failed int, bytesUploaded int64, duration time.Duration) {
	if l.IsQuiet && failed == 0 {
		return
	}

	fmt.Printf("%suploaded: %d (%s), deleted: %d", l.prefix(), uploaded, formatBytes(bytesUploaded), deleted)
	if failed > 0 {
		fmt.Printf(", failed: %d", failed)
	}
	fmt.Printf(" in %s\n", duration.Round(time.Millisecond))
}

// VerboseLogger is SyncLogger plus debug output.
type VerboseLogger struct {
	SyncLogger
}

func (l *VerboseLogger) Debug(format string, args ...any) {
	log.Printf("DEBUG: "+format, args...)
}

// NullLogger discards everything. Used in tests.
type NullLogger struct{}

func (l *NullLogger) Upload(source, target string)              {}
func (l *NullLogger) Delete(target string)                      {}
func (l *NullLogger) Skip(target string)                        {}
func (l *NullLogger) Error(operation, target string, err error) {}
func (l *NullLogger) Debug(format string, args ...any)          {}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
