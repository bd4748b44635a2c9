package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"
	// Caller identity, set by the authentication gateway in front of the API.
	HeaderXStudentID   = "X-Student-ID"
	HeaderXAuthorityID = "X-Authority-ID"

	// Context keys
	ContextKeyStudent   = "student"
	ContextKeyAuthority = "authority"
	ContextKeyRequestID = "request_id"

	// Database table names
	TableDepartments       = "departments"
	TableAuthorities       = "authorities"
	TableStudents          = "students"
	TableComplaints        = "complaints"
	TableStatusUpdates     = "status_updates"
	TableEscalationRecords = "escalation_records"
	TableVotes             = "votes"
	TableNotices           = "notices"
)
