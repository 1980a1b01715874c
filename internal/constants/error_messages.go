package constants

const MessageErrorFormat = "The '%s' format is invalid"

const (
	ErrCodeOrderMismatch         = "ORDER_ID_MISMATCH"
	ErrCodeNoAuthorizations      = "NO_AUTHORIZATIONS"
	ErrCodeAuthorizationNotFound = "AUTHORIZATION_NOT_FOUND"
	ErrCodeNoCaptures            = "NO_CAPTURES"
	ErrCodeCaptureNotFound       = "CAPTURE_NOT_FOUND"
	ErrCodeInvalidAmount         = "INVALID_AMOUNT"
	ErrCodeCaptureExceedsAuth    = "CAPTURE_EXCEEDS_AUTHORIZATION"
	ErrCodeRefundExceedsCapture  = "REFUND_EXCEEDS_CAPTURE"
	ErrCodeAuthorizationCaptured = "AUTHORIZATION_ALREADY_CAPTURED"
	ErrCodeDuplicateTransaction  = "DUPLICATE_TRANSACTION"
	ErrCodeGatewayError          = "GATEWAY_ERROR"
	ErrCodeDatabase              = "DATABASE_ERROR"
	ErrCodeValidationFailed      = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody    = "INVALID_REQUEST_BODY"
	ErrCodeInternalError         = "INTERNAL_ERROR"
)

var errorMessages = map[string]string{
	ErrCodeOrderMismatch:         "the requested order does not match the order under action",
	ErrCodeNoAuthorizations:      "no authorizations are recorded for this order",
	ErrCodeAuthorizationNotFound: "the requested authorization was not found for this order",
	ErrCodeNoCaptures:            "no captures are recorded for this order",
	ErrCodeCaptureNotFound:       "the requested capture was not found for this order",
	ErrCodeInvalidAmount:         "the amount entered is not a valid positive value",
	ErrCodeCaptureExceedsAuth:    "the capture amount exceeds the remaining authorized amount",
	ErrCodeRefundExceedsCapture:  "the refund amount exceeds the capture's remaining amount",
	ErrCodeAuthorizationCaptured: "a captured authorization cannot be voided",
	ErrCodeDuplicateTransaction:  "this transaction is already recorded",
	ErrCodeGatewayError:          "the payment processor rejected the request",
	ErrCodeDatabase:              "operation failed",
	ErrCodeValidationFailed:      "request validation failed",
	ErrCodeInvalidRequestBody:    "failed to parse request body",
	ErrCodeInternalError:         "internal server error",
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return errorMessages[ErrCodeInternalError]
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeValidationFailed, ErrCodeInvalidRequestBody, ErrCodeOrderMismatch, ErrCodeInvalidAmount:
		return 400
	case ErrCodeNoAuthorizations, ErrCodeAuthorizationNotFound, ErrCodeNoCaptures, ErrCodeCaptureNotFound:
		return 404
	case ErrCodeCaptureExceedsAuth, ErrCodeRefundExceedsCapture, ErrCodeAuthorizationCaptured, ErrCodeDuplicateTransaction:
		return 409
	case ErrCodeGatewayError:
		return 502
	case ErrCodeDatabase, ErrCodeInternalError:
		return 500
	default:
		return 500
	}
}
