package dto

// LoginReq represents the request body for the /login endpoint.
// The full name is the login identifier.
type LoginReq struct {
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required"`
}
