package routes

import (
	"github.com/dohee12/Back-GENIE/dbhelper"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate *validator.Validate

func CreateRoutes(r *mux.Router, creds *dbhelper.CredentialStore, ledger *dbhelper.VerificationLedger) {
	validate = validator.New()
	s := r.PathPrefix("/api").Subrouter()
	AuthRouter(s, creds, ledger)
}
