package api

const (
	ErrCodeInternal            = "INTERNAL_ERROR"
	ErrCodeNoDefaultRepository = "NO_DEFAULT_REPOSITORY"
	ErrCodeUpstream            = "UPSTREAM_ERROR"
)

type StatusResponse struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Error(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

func InternalError() ErrorResponse {
	return Error(ErrCodeInternal, "internal server error")
}
