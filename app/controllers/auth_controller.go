package controllers

import (
	"encoding/json"
	"net/http"

	"taskboard/app/dto"
	"taskboard/app/httperr"
	"taskboard/app/middleware"
	"taskboard/app/services"
	"taskboard/app/token"
)

type AuthController struct {
	Users  *services.UserService
	Signer *token.Signer
}

func NewAuthController(users *services.UserService, signer *token.Signer) *AuthController {
	return &AuthController{Users: users, Signer: signer}
}

// Register handles both self-service signup and admin provisioning: the
// route decides whether a token is optional or required, the service
// decides whether the requested role is allowed.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("invalid request body"))
		return
	}
	if err := dto.Validate(&req); err != nil {
		httperr.Write(w, httperr.Validation(err.Error()))
		return
	}

	var caller *token.Identity
	if ident, ok := middleware.GetIdentity(r.Context()); ok {
		caller = &ident
	}
	if _, err := c.Users.Register(caller, req.Name, req.Email, req.Password, req.Role); err != nil {
		httperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.MessageResponse{Message: "User registered successfully"})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.Write(w, httperr.Validation("invalid request body"))
		return
	}
	if req.Email == "" || req.Password == "" {
		httperr.Write(w, httperr.Validation("missing credentials"))
		return
	}

	u, err := c.Users.ValidateCredentials(req.Email, req.Password)
	if err != nil {
		httperr.Write(w, err)
		return
	}
	tok, err := c.Signer.Sign(u.ID, u.Role)
	if err != nil {
		httperr.Write(w, httperr.Internal(err))
		return
	}
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: tok,
		User:  dto.UserInfo{ID: u.ID, Name: u.Name, Email: u.Email},
	})
}
