package commons

type Response[T any] struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    *T       `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// PartialResponse reports a batch run that completed with a non-zero
// error count. It is still a success at the run level; callers decide
// how to render the distinction.
func PartialResponse[T any](message string, data T, errors ...string) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
		Errors:  errors,
	}
}
