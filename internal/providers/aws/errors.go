package aws

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorCategory string

// Error categories for programmatic handling of EC2 API failures.
const (
	// ErrResourceNotFound is returned when a requested resource doesn't exist
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrPermissionDenied is returned when AWS API access is denied
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrThrottling is returned when AWS API throttles the request
	ErrThrottling ErrorCategory = "request_throttled"

	// ErrConfigurationError is returned when there's an issue with AWS configuration
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrNetworkError is returned for network-related errors accessing the API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInternalError is returned for unexpected internal errors
	ErrInternalError ErrorCategory = "internal_error"
)

// Error wraps an EC2 API failure with the resource being fetched when
// it occurred.
type Error struct {
	Category     ErrorCategory
	ResourceType string
	ResourceID   string
	Message      string
	Underlying   error
}

func (e *Error) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("%s: %s [resource: %s/%s]", e.Category, e.Message, e.ResourceType, e.ResourceID)
	}
	return fmt.Sprintf("%s: %s [resource type: %s]", e.Category, e.Message, e.ResourceType)
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// IsErrorCategory checks if an error belongs to a specific category.
func IsErrorCategory(err error, category ErrorCategory) bool {
	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}
	return false
}

// ClassifyError maps an API error onto a category using the standard
// EC2 error codes, falling back to message analysis.
// Reference: https://docs.aws.amazon.com/AWSEC2/latest/APIReference/errors-overview.html
func ClassifyError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	wrap := func(category ErrorCategory, message string) *Error {
		return &Error{
			Category:     category,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			Message:      message,
			Underlying:   err,
		}
	}

	msg := err.Error()
	switch {
	case contains(msg, "InvalidVpcID.NotFound", "InvalidSubnetID.NotFound",
		"InvalidRouteTableID.NotFound", "InvalidInstanceID.NotFound",
		"InvalidGroup.NotFound", "NatGatewayNotFound"):
		return wrap(ErrResourceNotFound, "Resource not found")

	case contains(msg, "UnauthorizedOperation", "AuthFailure", "AccessDenied"):
		return wrap(ErrPermissionDenied, "Access denied")

	case contains(msg, "RequestLimitExceeded", "Throttling"):
		return wrap(ErrThrottling, "Request throttled")

	case contains(msg, "no such host", "connection refused", "timeout"):
		return wrap(ErrNetworkError, "Network error while accessing EC2 API")

	case contains(msg, "InvalidClientTokenId", "could not find region",
		"failed to retrieve credentials"):
		return wrap(ErrConfigurationError, "AWS SDK configuration error")

	default:
		return wrap(ErrInternalError, "EC2 API call failed")
	}
}

func contains(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
