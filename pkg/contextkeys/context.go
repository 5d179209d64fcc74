package contextkeys

// Custom type to avoid collisions with other packages' keys
type contextKey string

// DBContextKey is where *gorm.DB (pool or transaction) is stored
const DBContextKey = contextKey("db")

// Keys set by AuthMiddleware on gin.Context
const (
	UserIDKey     = "userID"
	BusinessIDKey = "businessID"
	RoleKey       = "role"
)
