package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidType          ErrorCode = 102
	ErrCodeInvalidPeriod        ErrorCode = 103
	ErrCodeMissingParameter     ErrorCode = 104
	ErrCodeInvalidVersion       ErrorCode = 105
	ErrCodeInvalidMultiplier    ErrorCode = 106

	// Bar data errors (200-299)
	ErrCodeInvalidBar        ErrorCode = 200
	ErrCodeOutOfOrderBar     ErrorCode = 201
	ErrCodeEmptyBatch        ErrorCode = 202
	ErrCodeNoBars            ErrorCode = 203
	ErrCodeBarDataReadFailed ErrorCode = 204

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301

	// Geometry errors (400-499)
	ErrCodeGeometryNotReady ErrorCode = 400
	ErrCodeInvalidViewport  ErrorCode = 401

	// Drawing errors (500-599)
	ErrCodeDrawItemIndexOutOfRange ErrorCode = 500
	ErrCodeDrawItemLocked          ErrorCode = 501
	ErrCodeInvalidDrawType         ErrorCode = 502
	ErrCodeInvalidDrawItem         ErrorCode = 503

	// Marker errors (600-699)
	ErrCodeMarkerNotFound ErrorCode = 600
	ErrCodeInvalidMarker  ErrorCode = 601

	// Render errors (700-799)
	ErrCodeRenderFailed ErrorCode = 700
)
