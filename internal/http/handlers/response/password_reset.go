package response

type Outcome struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

type TokenValidation struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Email   *string `json:"email"`
}
