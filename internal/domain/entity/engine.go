package entity

// Availability describes whether an engine can be used on this machine.
type Availability struct {
	Available    bool
	Engine       string
	Platform     string
	Version      string
	ErrorMessage string
	// DownloadURL points at a runtime installer when the engine is missing.
	DownloadURL string
}

// CrashReason classifies a renderer failure.
type CrashReason string

const (
	CrashReasonCrashed          CrashReason = "crashed"
	CrashReasonExceededMemory   CrashReason = "exceeded_memory"
	CrashReasonTerminatedByAPI  CrashReason = "terminated_by_api"
	CrashReasonProcessUnhealthy CrashReason = "process_unhealthy"
	CrashReasonUnknown          CrashReason = "unknown"
)
