package response

type AdminStatusResponse struct {
	IsAuthenticated bool `json:"isAuthenticated"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}
