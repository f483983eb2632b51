package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Content Types
	ContentTypeJSON = "application/json"

	// Context keys
	ContextKeyOperatorID   = "operator_id"
	ContextKeyOperatorRole = "operator_role"
	ContextKeyRequestID    = "request_id"

	// Operator roles
	RoleAdmin    = "admin"
	RoleReviewer = "reviewer"

	// Database table names
	TableSchools              = "schools"
	TableSubscriptionPlans    = "subscription_plans"
	TableSubscriptionRequests = "subscription_requests"
	TablePaymentProofs        = "subscription_payment_proofs"
	TableSchoolSubscriptions  = "school_subscriptions"
	TableAuditLogs            = "subscription_audit_logs"
)
