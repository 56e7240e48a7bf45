package constants

// Context keys set by the auth middleware
const (
	ContextKeyUserID      = "user_id"
	ContextKeyDesignation = "designation"
)

// Pagination bounds
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

const MinPasswordLength = 6

// Seeded designation names. Stored as data so more can be added at runtime.
const (
	DesignationAdmin   = "Admin"
	DesignationManager = "Manager"
	DesignationMember  = "Member"
)

// Date layouts used in progress series and CSV exports
const (
	DayKeyLayout = "02-01-2006"      // dd-MM-yyyy, progress bucket keys
	ReportLayout = "02-January-2006" // dd-MMMM-yyyy, CSV and email dates
)

// MaxImageSize is the upload cap for profile images.
const MaxImageSize = 2 << 20
