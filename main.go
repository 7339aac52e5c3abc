package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/dohee12/Back-GENIE/dbhelper"
	"github.com/dohee12/Back-GENIE/routes"
	"github.com/dohee12/Back-GENIE/utils"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file loaded", "error", err)
	}

	db, err := dbhelper.OpenDB()
	if err != nil {
		slog.Error("open database", "error", err)
		os.Exit(1)
	}
	if err := dbhelper.InitDB(db); err != nil {
		slog.Error("migrate database", "error", err)
		os.Exit(1)
	}

	creds := dbhelper.NewCredentialStore(db)
	// Legacy rows hold plaintext passwords; they must be rewritten before
	// any login is served.
	if err := creds.RehashLegacyPasswords(); err != nil {
		slog.Error("rehash legacy passwords", "error", err)
		os.Exit(1)
	}
	ledger := dbhelper.NewVerificationLedger(db, utils.CODE_DURATION)
	if err := ledger.PurgeExpired(); err != nil {
		slog.Warn("purge expired verification codes", "error", err)
	}

	r := mux.NewRouter()
	r.StrictSlash(true)
	routes.CreateRoutes(r, creds, ledger)

	addr := os.Getenv(utils.SERVER_ADDR)
	if len(addr) == 0 {
		addr = utils.DEFAULT_SERVER_ADDR
	}
	slog.Info("listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
