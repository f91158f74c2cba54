package models

// APIResponse represents a standardized API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

// ListMeta carries counts for list endpoints
type ListMeta struct {
	Count int `json:"count"`
}

// SuccessResponse creates a standardized success response
func SuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ListResponse creates a success response carrying a collection and its count
func ListResponse(data interface{}, count int) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
		Meta:    ListMeta{Count: count},
	}
}

// ErrorResponse creates a standardized error response
func ErrorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}
