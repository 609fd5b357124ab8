package router

import (
	"errors"
	"log"

	"github.com/trademart/backend/internal/models"
	"github.com/trademart/backend/internal/protocol"
	"github.com/trademart/backend/internal/store"
)

func (r *Router) handleLogin(env protocol.Envelope) any {
	resp := protocol.LoginResponse{Type: "login_response"}

	var req protocol.LoginRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = "Invalid username or password"
		return resp
	}

	// Absent user and hash mismatch answer identically so the response
	// cannot be used to enumerate usernames.
	u, ok := r.store.User(req.Username)
	if !ok || u.PasswordHash != req.PasswordHash {
		log.Printf("[AUTH] Failed login attempt for %q", req.Username)
		resp.Message = "Invalid username or password"
		return resp
	}

	resp.Success = true
	resp.Message = "Login successful"
	resp.IsAdmin = u.IsAdmin
	return resp
}

func (r *Router) handleSignup(env protocol.Envelope) any {
	resp := protocol.StatusResponse{Type: "signup_response"}

	var req protocol.SignupRequest
	if err := r.bindValidated(env, &req); err != nil {
		resp.Message = msgInvalidRequest
		return resp
	}

	err := r.store.CreateUser(models.User{
		Username:     req.Username,
		PasswordHash: req.PasswordHash,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
	})
	if errors.Is(err, store.ErrDuplicateUser) {
		resp.Message = "Username already exists"
		return resp
	}

	log.Printf("[AUTH] User %q signed up", req.Username)
	resp.Success = true
	resp.Message = "Signup successful"
	return resp
}
