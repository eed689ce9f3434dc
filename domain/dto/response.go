package dto

// Res is the success envelope returned by every endpoint.
type Res struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// ErrorRes is the failure envelope.
type ErrorRes struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors"`
}

func NewRes(statusCode int, data interface{}, message string) Res {
	return Res{StatusCode: statusCode, Data: data, Message: message, Success: statusCode < 400}
}

func NewErrorRes(statusCode int, message string, errs []string) ErrorRes {
	if errs == nil {
		errs = []string{}
	}
	return ErrorRes{StatusCode: statusCode, Message: message, Success: false, Errors: errs}
}

// Page describes an offset/limit window.
type Page struct {
	Total      int64 `json:"total"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
}
