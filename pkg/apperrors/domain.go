package apperrors

import (
	"net/http"
)

// ErrNotFound maps a repository "not found" into a 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Tenancy ---

// ErrNoBusinessContext is returned when the caller carries no business claim
var ErrNoBusinessContext = New(
	CodeUnauthorized,
	"auth",
	"No business associated with the current user",
	http.StatusUnauthorized,
)

var ErrBusinessNotFound = New(
	CodeNotFound,
	"business",
	"Business not found",
	http.StatusNotFound,
)

// --- Members & plans ---

var ErrMemberNotFound = New(
	CodeNotFound,
	"member",
	"Member not found",
	http.StatusNotFound,
)

var ErrPlanNotFound = New(
	CodeNotFound,
	"plan",
	"Subscription plan not found",
	http.StatusNotFound,
)

var ErrInvalidPlanDuration = New(
	CodeValidationFailed,
	"plan",
	"Duration in days must be greater than zero",
	http.StatusBadRequest,
)

var ErrNegativePlanPrice = New(
	CodeValidationFailed,
	"plan",
	"Price cannot be negative",
	http.StatusBadRequest,
)

// --- Memberships ---

var ErrMembershipNotFound = New(
	CodeNotFound,
	"membership",
	"Membership not found",
	http.StatusNotFound,
)

// ErrMembershipOverlap - the member already holds an active membership in that range
var ErrMembershipOverlap = New(
	CodeConflict,
	"membership",
	"Member already has an active membership overlapping this period",
	http.StatusConflict,
)

// --- Payments ---

var ErrPaymentNotFound = New(
	CodeNotFound,
	"payment",
	"Payment not found",
	http.StatusNotFound,
)

var ErrInvalidPaymentAmount = New(
	CodeValidationFailed,
	"payment",
	"Payment amount must be greater than zero",
	http.StatusBadRequest,
)

var ErrInvalidPaymentMethod = New(
	CodeValidationFailed,
	"payment",
	"Unknown payment method",
	http.StatusBadRequest,
)

// --- Notifications ---

var ErrNotificationNotFound = New(
	CodeNotFound,
	"notification",
	"Notification not found",
	http.StatusNotFound,
)

// --- Auth ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Too many requests",
	http.StatusTooManyRequests,
)

// --- Jobs ---

// ErrSweepInProgress - another replica or tick currently holds the sweep lock
var ErrSweepInProgress = New(
	CodeConflict,
	"jobs",
	"An expiry sweep is already running",
	http.StatusConflict,
)
