package dto

// SuccessResponse is the envelope for successful API responses.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// ErrorResponse is the envelope for every failed API response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK wraps data in a success envelope.
func OK(data any) SuccessResponse {
	return SuccessResponse{Success: true, Data: data}
}

// OKMessage is a success envelope carrying only a message.
func OKMessage(message string) SuccessResponse {
	return SuccessResponse{Success: true, Message: message}
}

// Fail wraps a human-readable error message.
func Fail(message string) ErrorResponse {
	return ErrorResponse{Success: false, Error: message}
}

// ListParams defines limit/offset query parameters shared by list endpoints.
type ListParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}
