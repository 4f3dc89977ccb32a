package models

import (
	"errors"
	"strings"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (r CreateUserRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, "username is required")
	}

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}

	role := strings.ToUpper(strings.TrimSpace(r.Role))
	if role == "" {
		errs = append(errs, "role is required")
	} else if role != "ADMIN" && role != "MANAGER" && role != "VIEWER" {
		errs = append(errs, "role must be one of ADMIN, MANAGER, VIEWER")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

// CreateUserResponse carries the plaintext API key exactly once, at
// creation time. Only the bcrypt hash is stored.
type CreateUserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	APIKey    string `json:"apiKey"`
	CreatedAt string `json:"createdAt"`
}
