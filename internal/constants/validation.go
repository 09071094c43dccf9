package constants

// Field Length Limits
const (
	MinPasswordLength     = 6
	MaxPasswordLength     = 100
	MinNameLength         = 2
	MaxNameLength         = 50
	MaxMerchantNameLength = 100
	MaxProductNameLength  = 100
	MaxDescLength         = 2000
	MaxNotesLength        = 500
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Product enumerations
const (
	ProductSizes      = "XS|S|M|L|XL|XXL|Free Size"
	ProductConditions = "Excellent|Very Good|Good|Fair"
	DefaultCondition  = "Good"
)

// Order enumerations
const (
	OrderStatuses   = "pending|confirmed|shipped|delivered|returned|cancelled"
	PaymentStatuses = "pending|paid|refunded"

	OrderStatusPending   = "pending"
	OrderStatusCancelled = "cancelled"
	PaymentStatusPending = "pending"
)
