package contract

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
	Result  any    `json:"result,omitempty"`
}

type ResponseError struct {
	Successful bool   `json:"successful"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"`
}
