package utils

import "time"

// environment variables
const DBUSER = "DBUSER"
const DBPASS = "DBPASS"
const DBHOST = "DBHOST"
const DBNAME = "DBNAME"
const JWT_SECRET_KEY = "JWT_SECRET_KEY"
const SERVER_ADDR = "SERVER_ADDR"

// defaults when the environment leaves them unset
const DEFAULT_DBHOST = "127.0.0.1:3306"
const DEFAULT_SERVER_ADDR = ":8000"

// error messages
const GENERIC_SERVER_ERROR = "We had some trouble with that request. Please try again!"
const BAD_CREDENTIALS_ERROR = "That ID and password didn't match. Please try again!"
const USER_NOT_FOUND_ERROR = "We couldn't find an account matching that information."
const DUPLICATE_SIGNUP_ERROR = "Someone is already using that ID or email! Please try logging in!"
const BAD_CODE_ERROR = "That verification code didn't match. Please request a new one!"
const MISSING_REQUEST_DATA = "Your request was missing some information."
const INVALID_TOKEN_ERROR = "Your session is no longer valid. Please log in again!"

// status messages
const LOGIN_SUCCESS_MESSAGE = "Login successful!"
const CODE_SENT_MESSAGE = "New verification code sent!"
const CODE_CONFIRMED_MESSAGE = "Phone number verified!"
const PASSWORD_RESET_MESSAGE = "Your password has been reset. Please log in!"

const HASH_ROUNDS = 10

const TOKEN_DURATION = time.Hour
const CODE_DURATION = 5 * time.Minute
