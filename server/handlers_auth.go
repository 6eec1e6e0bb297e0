package server

import (
	"errors"
	"net/http"

	"github.com/Daskott/raksha/server/auth"
	"github.com/Daskott/raksha/server/models"
	"gorm.io/gorm"
)

const DUPLICATE_USER_MSG = "User with this email or phone number already exists"

func (s *Server) register(rw http.ResponseWriter, r *http.Request) {
	data := RegisterRequest{}
	if !s.decodeAndValidate(rw, r, &data) {
		return
	}
	data.PhoneNumber = normalizePhoneNumber(data.PhoneNumber)

	exists, err := s.store.UserExists(data.Email, data.PhoneNumber)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	if exists {
		writeError(rw, http.StatusBadRequest, DUPLICATE_USER_MSG)
		return
	}

	passwordHash, err := auth.HashPassword(data.Password)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	user := models.User{
		Email:       data.Email,
		PhoneNumber: data.PhoneNumber,
		FullName:    data.FullName,
		Password:    passwordHash,
		IsActive:    true,
	}

	// A concurrent registration can still win the race after the check above
	err = s.store.CreateUserWithSettings(&user)
	if errors.Is(err, models.ErrDuplicate) {
		writeError(rw, http.StatusBadRequest, DUPLICATE_USER_MSG)
		return
	}

	if err != nil {
		writeInternalError(rw, err)
		return
	}

	s.writeToken(rw, user.ID)
}

func (s *Server) logIn(rw http.ResponseWriter, r *http.Request) {
	data := LoginRequest{}
	if !s.decodeAndValidate(rw, r, &data) {
		return
	}

	user, err := s.store.FindUserByEmail(data.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		writeInternalError(rw, err)
		return
	}

	if user == nil || !auth.CheckPasswordHash(data.Password, user.Password) {
		rw.Header().Set("WWW-Authenticate", "Bearer")
		writeError(rw, http.StatusUnauthorized, "Incorrect email or password")
		return
	}

	s.writeToken(rw, user.ID)
}

func (s *Server) me(rw http.ResponseWriter, r *http.Request) {
	writeResponse(rw, currentUser(r), http.StatusOK)
}

func (s *Server) jwks(rw http.ResponseWriter, r *http.Request) {
	jwks, err := s.tokens.JWKS()
	if errors.Is(err, auth.ErrNoPublicKey) {
		writeError(rw, http.StatusNotFound, "Not Found")
		return
	}

	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, jwks, http.StatusOK)
}

func (s *Server) writeToken(rw http.ResponseWriter, userID string) {
	token, err := s.tokens.EncodeJWT(userID)
	if err != nil {
		writeInternalError(rw, err)
		return
	}

	writeResponse(rw, TokenResponse{AccessToken: token, TokenType: auth.TOKEN_TYPE}, http.StatusOK)
}
