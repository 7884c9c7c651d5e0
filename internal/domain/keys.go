package domain

// CtxKey names values stored on the request context by the HTTP middleware.
type CtxKey string

const (
	KeyUserID    CtxKey = "user_id"
	KeyUserEmail CtxKey = "user_email"
	KeyUserRole  CtxKey = "user_role"
	KeyRequestID CtxKey = "request_id"
)
