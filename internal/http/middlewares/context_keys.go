package middlewares

const (
	ctxUserIDKey    = "auth.userID"
	ctxEmailKey     = "auth.email"
	ctxRoleKey      = "auth.role"
	CtxRequestIDKey = "request_id"
)
