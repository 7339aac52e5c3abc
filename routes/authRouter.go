package routes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dohee12/Back-GENIE/dbhelper"
	"github.com/dohee12/Back-GENIE/middlewares"
	"github.com/dohee12/Back-GENIE/utils"
	"github.com/gorilla/mux"
)

type TokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type StatusResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	UserID  uint64 `json:"userId"`
	LoginID string `json:"loginId"`
	Email   string `json:"email"`
}

type AvailabilityResponse struct {
	IsValid bool `json:"isValid"`
}

type CodeResponse struct {
	Code string `json:"code"`
}

type LoginIDResponse struct {
	LoginID string `json:"loginId"`
}

type LoginRequest struct {
	LoginID  string `json:"loginId" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	LoginID  string `json:"loginId" validate:"required,min=4,max=64"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=7,max=32"`
	Birth    string `json:"birth" validate:"omitempty,max=16"`
}

type CheckLoginIDRequest struct {
	LoginID string `json:"loginId" validate:"required"`
}

type CheckEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PhoneRequest struct {
	Phone string `json:"phone" validate:"required,min=7,max=32"`
}

type ConfirmCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

type FindLoginIDRequest struct {
	Birth string `json:"birth" validate:"required"`
	Phone string `json:"phone" validate:"required"`
}

type FindPasswordRequest struct {
	LoginID string `json:"loginId" validate:"required"`
	Birth   string `json:"birth" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
}

type ResetPasswordRequest struct {
	Phone       string `json:"phone" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=64"`
}

type RequestBody interface {
	LoginRequest | SignupRequest | CheckLoginIDRequest | CheckEmailRequest |
		PhoneRequest | ConfirmCodeRequest | FindLoginIDRequest |
		FindPasswordRequest | ResetPasswordRequest
}

// DecodeValidBody parses a JSON request body into a typed struct, rejecting
// unknown fields, then runs the struct's validation tags. Any failure is a
// validation error; handlers never touch raw request maps.
func DecodeValidBody[B RequestBody](r *http.Request) (B, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var requestBody B
	if err := decoder.Decode(&requestBody); err != nil {
		return requestBody, err
	}
	if err := validate.Struct(requestBody); err != nil {
		return requestBody, err
	}
	return requestBody, nil
}

type authHandler struct {
	creds  *dbhelper.CredentialStore
	ledger *dbhelper.VerificationLedger
}

func AuthRouter(s *mux.Router, creds *dbhelper.CredentialStore, ledger *dbhelper.VerificationLedger) {
	h := &authHandler{creds: creds, ledger: ledger}
	s.HandleFunc("/login", h.Login).Methods("POST")
	s.HandleFunc("/signup", h.Signup).Methods("POST")
	s.HandleFunc("/check-id", h.CheckLoginID).Methods("POST")
	s.HandleFunc("/check-email", h.CheckEmail).Methods("POST")
	s.HandleFunc("/send-code", h.SendCode).Methods("POST")
	s.HandleFunc("/verify-code", h.VerifyCode).Methods("POST")
	s.HandleFunc("/find-id", h.FindLoginID).Methods("POST")
	s.HandleFunc("/find-password", h.FindPassword).Methods("POST")
	s.HandleFunc("/reset-password", h.ResetPassword).Methods("POST")
	s.HandleFunc("/me", middlewares.IsAccessTokenAuthorized(h.Me)).Methods("GET")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func validationError(w http.ResponseWriter, err error) {
	slog.Info("rejected request body", "error", err)
	http.Error(w, utils.MISSING_REQUEST_DATA, http.StatusBadRequest)
}

// storeError maps a store failure onto a status code and a stable message.
// Unexpected errors are logged and surfaced as a generic failure so query
// internals never reach the caller.
func storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dbhelper.ErrNotFound):
		http.Error(w, utils.USER_NOT_FOUND_ERROR, http.StatusNotFound)
	case errors.Is(err, dbhelper.ErrConflict):
		http.Error(w, utils.DUPLICATE_SIGNUP_ERROR, http.StatusConflict)
	case errors.Is(err, dbhelper.ErrBadCredentials):
		http.Error(w, utils.BAD_CREDENTIALS_ERROR, http.StatusUnauthorized)
	case errors.Is(err, dbhelper.ErrBadCode):
		http.Error(w, utils.BAD_CODE_ERROR, http.StatusBadRequest)
	default:
		slog.Error("store failure", "error", err)
		http.Error(w, utils.GENERIC_SERVER_ERROR, http.StatusInternalServerError)
	}
}

func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[LoginRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	user, err := h.creds.VerifyPassword(body.LoginID, body.Password)
	if err != nil {
		storeError(w, err)
		return
	}
	token, err := utils.CreateToken(strconv.FormatUint(user.UserID, 10))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{
		Token:   token,
		Message: utils.LOGIN_SUCCESS_MESSAGE,
	})
}

func (h *authHandler) Signup(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[SignupRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	user, err := h.creds.Create(body.LoginID, body.Password, body.Email, body.Phone, body.Birth)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UserResponse{
		UserID:  user.UserID,
		LoginID: user.LoginID,
		Email:   user.Email,
	})
}

// CheckLoginID is advisory: the unique index on users.login_id is what
// actually guards signup against races.
func (h *authHandler) CheckLoginID(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[CheckLoginIDRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	_, err = h.creds.FindByLoginID(body.LoginID)
	if err != nil && !errors.Is(err, dbhelper.ErrNotFound) {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvailabilityResponse{IsValid: errors.Is(err, dbhelper.ErrNotFound)})
}

func (h *authHandler) CheckEmail(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[CheckEmailRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	_, err = h.creds.FindByEmail(body.Email)
	if err != nil && !errors.Is(err, dbhelper.ErrNotFound) {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AvailabilityResponse{IsValid: errors.Is(err, dbhelper.ErrNotFound)})
}

// SendCode hands the code back in the response body; delivering it over SMS
// is the gateway's job, not this server's.
func (h *authHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[PhoneRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	code, err := h.ledger.Issue(body.Phone)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CodeResponse{Code: code})
}

func (h *authHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[ConfirmCodeRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	ok, err := h.ledger.Lookup(body.Phone, body.Code)
	if err != nil {
		storeError(w, err)
		return
	}
	if !ok {
		storeError(w, dbhelper.ErrBadCode)
		return
	}
	if err := h.ledger.Consume(body.Phone); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Message: utils.CODE_CONFIRMED_MESSAGE})
}

func (h *authHandler) FindLoginID(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[FindLoginIDRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	user, err := h.creds.FindByBirthPhone(body.Birth, body.Phone)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginIDResponse{LoginID: user.LoginID})
}

// FindPassword authorizes a reset without the current password: all three
// identity factors must match before a code is issued to the account's phone.
func (h *authHandler) FindPassword(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[FindPasswordRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	user, err := h.creds.FindByLoginIDBirthPhone(body.LoginID, body.Birth, body.Phone)
	if err != nil {
		storeError(w, err)
		return
	}
	if _, err := h.ledger.Issue(user.Phone); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Message: utils.CODE_SENT_MESSAGE})
}

func (h *authHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	body, err := DecodeValidBody[ResetPasswordRequest](r)
	if err != nil {
		validationError(w, err)
		return
	}
	ok, err := h.ledger.Lookup(body.Phone, body.Code)
	if err != nil {
		storeError(w, err)
		return
	}
	if !ok {
		storeError(w, dbhelper.ErrBadCode)
		return
	}
	if err := h.creds.ResetPassword(body.Phone, body.NewPassword); err != nil {
		storeError(w, err)
		return
	}
	if err := h.ledger.Consume(body.Phone); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, StatusResponse{Message: utils.PASSWORD_RESET_MESSAGE})
}

func (h *authHandler) Me(w http.ResponseWriter, r *http.Request) {
	subject := middlewares.SubjectFromContext(r.Context())
	userID, err := strconv.ParseUint(subject, 10, 64)
	if err != nil {
		http.Error(w, utils.INVALID_TOKEN_ERROR, http.StatusUnauthorized)
		return
	}
	user, err := h.creds.FindByUserID(userID)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{
		UserID:  user.UserID,
		LoginID: user.LoginID,
		Email:   user.Email,
	})
}
