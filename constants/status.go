package constants

// Collection keys, one serialized blob per entity type
const (
	KeyProperties = "properties"
	KeyTickets    = "tickets"
	KeyUsers      = "users"
)

// Storage drivers
const (
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Ticket list tabs
const (
	TicketSourceAll      = "all"
	TicketSourceTenant   = "tenant"
	TicketSourceInternal = "internal"
)

// Context keys set by the auth middleware
const (
	ContextCurrentUser = "currentUser"
	ContextSession     = "session"
	ContextRequestID   = "requestId"
)

const (
	DefaultUserID   = "default"
	DefaultUserName = "Default User"

	UnknownPropertyName = "Unknown Property"
	NoFutureBookings    = "No future bookings"
)
