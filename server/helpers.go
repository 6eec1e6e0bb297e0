package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/Daskott/raksha/server/models"
	"github.com/Daskott/raksha/utils"
	"github.com/go-co-op/gocron"
	"github.com/go-playground/validator"
)

var (
	phoneNumberRegex      = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneNumberSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// ---------------------------------------------------------------------------------//
// Handler Helper functions
// --------------------------------------------------------------------------------//

func writeResponse(rw http.ResponseWriter, payLoad interface{}, statusCode int) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(statusCode)
	json.NewEncoder(rw).Encode(payLoad)
}

func writeError(rw http.ResponseWriter, statusCode int, detail string, errs ...string) {
	if len(errs) == 0 {
		errs = []string{detail}
	}

	logg.Info(errs)
	writeResponse(rw, ErrorPayload{Detail: detail, Errors: errs}, statusCode)
}

func writeInternalError(rw http.ResponseWriter, err error) {
	logg.Error(err)
	writeResponse(rw, ErrorPayload{Detail: "Internal server error", Message: err.Error()}, http.StatusInternalServerError)
}

// decodeAndValidate reads the JSON body into 'data' and validates it. On failure a 400 is
// written and false returned.
func (s *Server) decodeAndValidate(rw http.ResponseWriter, r *http.Request, data interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(data)
	if err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}

	err = s.validate.Struct(data)
	if err != nil {
		messages := validationMessages(err)
		writeError(rw, http.StatusBadRequest, messages[0], messages...)
		return false
	}

	return true
}

func validationMessages(err error) []string {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := []string{}
	for _, fieldErr := range validationErrs {
		field := fieldErr.Field()
		if namespace := strings.SplitN(fieldErr.Namespace(), ".", 2); len(namespace) == 2 {
			field = namespace[1]
		}

		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%v is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%v must be a valid email address", field))
		case "phone_number":
			messages = append(messages, fmt.Sprintf("%v must be a valid phone number", field))
		case "password":
			messages = append(messages, fmt.Sprintf("%v must not be empty or contain spaces", field))
		case "alert_type":
			messages = append(messages, fmt.Sprintf("%v must be one of panic_button, voice_sos, predictive, zone_alert", field))
		default:
			messages = append(messages, fmt.Sprintf("%v is invalid", field))
		}
	}

	return messages
}

func RegisterValidators(validate *validator.Validate) error {
	// Report fields by their json names
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	err := validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		// if whitespace in password return false
		if strings.ContainsAny(fl.Field().String(), " \t\n") {
			return false
		}
		return len(fl.Field().String()) > 0
	})
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return isValidPhoneNumber(fl.Field().String())
	})
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("alert_type", func(fl validator.FieldLevel) bool {
		return models.AlertType(fl.Field().String()).Valid()
	})
	if err != nil {
		return err
	}

	return nil
}

func isValidPhoneNumber(phoneNumber string) bool {
	return phoneNumberRegex.MatchString(normalizePhoneNumber(phoneNumber))
}

// normalizePhoneNumber drops the separators people type, so a number is stored & compared one way
func normalizePhoneNumber(phoneNumber string) string {
	return phoneNumberSeparators.Replace(strings.TrimSpace(phoneNumber))
}

func currentUser(r *http.Request) *models.User {
	decodedJWT, _ := r.Context().Value(DECODED_JWT_CONTEXT_KEY).(DecodedJWT)
	return decodedJWT.User
}

// ---------------------------------------------------------------------------------//
// Middleware Helper functions
// --------------------------------------------------------------------------------//

func (s *Server) decodeAndVerifyAuthHeader(authHeaderValue string) DecodedJWT {
	authHeaderList := strings.Split(authHeaderValue, "Bearer ")
	if len(authHeaderList) < 2 || strings.TrimSpace(authHeaderList[1]) == "" {
		return DecodedJWT{ErrorMsg: "Not authenticated"}
	}

	tokenClaims, err := s.tokens.DecodeJWT(strings.TrimSpace(authHeaderList[1]))
	if err != nil {
		return DecodedJWT{ErrorMsg: "Could not validate credentials"}
	}

	// validate that the user account still exists
	user, err := s.store.FindUserBy("id", tokenClaims.Subject)
	if err != nil || !user.IsActive {
		return DecodedJWT{ErrorMsg: "Could not validate credentials"}
	}

	return DecodedJWT{Claims: tokenClaims, User: user}
}

// ---------------------------------------------------------------------------------//
// Server Helper functions
// --------------------------------------------------------------------------------//

func serve(server *http.Server) {
	logg.Infof("Raksha server is listening on port%v", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Fatal(err)
	}
}

func cleanup(scheduler *gocron.Scheduler, server *http.Server, backup *sqliteBackup) {
	scheduler.Stop()

	// Shutdown server gracefully
	ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctxShutDown); err != nil {
		logg.Fatalf("Raksha server shutdown failed:%+s", err)
	}

	// Last backup once no more requests can write to the db
	if backup != nil {
		if err := backup.close(); err != nil {
			logg.Error(err)
		}
	}

	logg.Infof("Raksha server stopped properly")
}

// configDirectory retrieves the directory to store raksha data
// Or logs an error message and then calls os.Exit if it's unable to.
func configDirectory(devMode bool) string {
	// Use 'raksha' folder in home directory for prod
	configFolderName := "raksha"
	rootDir, err := os.UserHomeDir()
	fatalOnError(err)

	// Use 'dev' folder in current directory for dev mode
	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		fatalOnError(err)
	}

	configDir := filepath.Join(rootDir, configFolderName)

	err = utils.CreateDirIfNotExist(configDir)
	fatalOnError(err)

	return configDir
}

func fatalOnError(err error) {
	if err != nil {
		logg.Fatal(err)
	}
}
