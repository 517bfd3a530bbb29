package netresult

// Kind is the category of a failed call.
type Kind int

const (
	KindUnknown Kind = iota
	KindNoInternet
	KindTimeout
	KindClientError
	KindServerError
	KindSerialization
)

func (k Kind) String() string {
	switch k {
	case KindNoInternet:
		return "no_internet"
	case KindTimeout:
		return "timeout"
	case KindClientError:
		return "client_error"
	case KindServerError:
		return "server_error"
	case KindSerialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Default messages used when a failure carries no description of its own.
const (
	MsgNoInternet    = "No internet connection"
	MsgTimeout       = "Request timeout"
	MsgSerialization = "Serialization error"
	MsgUnknown       = "Unknown error"
	MsgClientError   = "Client error"
	MsgServerError   = "Server error"
)

// ErrorInfo describes why a call failed. Status is only set for
// KindClientError and KindServerError. Message is never empty.
type ErrorInfo struct {
	Kind    Kind
	Status  int
	Message string
	Cause   error
}

func (e *ErrorInfo) Error() string { return e.Message }

func (e *ErrorInfo) Unwrap() error { return e.Cause }

// NewNoInternet reports that the host could not be resolved or reached.
func NewNoInternet(cause error) *ErrorInfo {
	return &ErrorInfo{Kind: KindNoInternet, Message: MsgNoInternet, Cause: cause}
}

// NewTimeout reports that the call did not complete in time.
func NewTimeout(cause error) *ErrorInfo {
	return &ErrorInfo{Kind: KindTimeout, Message: MsgTimeout, Cause: cause}
}

// NewClientError reports a 4xx response.
func NewClientError(status int, message string) *ErrorInfo {
	return &ErrorInfo{Kind: KindClientError, Status: status, Message: orDefault(message, MsgClientError)}
}

// NewServerError reports a 5xx response.
func NewServerError(status int, message string) *ErrorInfo {
	return &ErrorInfo{Kind: KindServerError, Status: status, Message: orDefault(message, MsgServerError)}
}

// NewSerialization reports a payload that could not be encoded or decoded.
func NewSerialization(cause error) *ErrorInfo {
	return &ErrorInfo{Kind: KindSerialization, Message: MsgSerialization, Cause: cause}
}

// NewUnknown reports any other failure.
func NewUnknown(message string, cause error) *ErrorInfo {
	return &ErrorInfo{Kind: KindUnknown, Message: orDefault(message, MsgUnknown), Cause: cause}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
