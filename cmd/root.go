/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	devConfig "github.com/Daskott/raksha/dev/config"
	"github.com/Daskott/raksha/shared"
	"github.com/Daskott/raksha/version"
	"github.com/fatih/color"
	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	config  *viper.Viper

	isDevEnv bool

	yellow       = color.New(color.FgYellow).SprintFunc()
	red          = color.New(color.FgRed).SprintFunc()
	warningLabel = yellow("Warning:")
)

// envBindings maps config keys to the env vars that override them
var envBindings = map[string]string{
	"auth.secretKey":                "JWT_SECRET_KEY",
	"auth.accessTokenExpireMinutes": "JWT_ACCESS_TOKEN_EXPIRE_MINUTES",
	"auth.privateKeyPem":            "JWT_PRIVATE_KEY_PEM",
	"twilio.accountSid":             "TWILIO_ACCOUNT_SID",
	"twilio.authToken":              "TWILIO_AUTH_TOKEN",
	"twilio.phoneNumber":            "TWILIO_PHONE_NUMBER",
	"google.mapsApiKey":             "GOOGLE_MAPS_API_KEY",
	"google.applicationCredentials": "GOOGLE_APPLICATION_CREDENTIALS",
	"openai.apiKey":                 "OPENAI_API_KEY",
	"database.dsn":                  "DATABASE_URL",
	"database.passPhrase":           "DATABASE_PASSPHRASE",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd = createRootCmd()
	rootCmd.Version = fmt.Sprintf("v%s", version.Version)
}

func createRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use: "raksha",
		Short: `raksha is the backend for the Raksha+ personal safety app.

It keeps each user's emergency contacts, raises alerts that are sent to those
contacts by SMS, scores locations against known safety zones and answers chat
messages from the in-app safety assistant.`,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.raksha.yaml)")
	cmd.PersistentFlags().BoolVarP(&isDevEnv, "dev", "", false, "run in development mode")

	return cmd
}

// initConfig reads in the config file and ENV variables if set.
func initConfig() {
	// A missing .env file is fine, the env is then read as is
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, warningLabel, "could not load .env:", err)
	}

	config = newConfig()

	switch {
	case cfgFile != "":
		config.SetConfigFile(cfgFile)
		cobra.CheckErr(config.ReadInConfig())
		fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
	case isDevEnv:
		cobra.CheckErr(config.ReadConfig(strings.NewReader(devConfig.SERVER_YML)))
		fmt.Fprintln(os.Stderr, "Using dev config")
	default:
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		config.SetConfigFile(filepath.Join(home, ".raksha.yaml"))
		if err := config.ReadInConfig(); err == nil {
			fmt.Fprintln(os.Stderr, "Using config file:", config.ConfigFileUsed())
		}
	}
}

// newConfig returns a viper instance with defaults & env overrides set up, but nothing read yet
func newConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("raksha.listener.port", 8000)
	v.SetDefault("raksha.cron.timeZone", "UTC")
	v.SetDefault("raksha.authRateLimit", "20-M")
	v.SetDefault("database.driver", "sqlcipher")
	v.SetDefault("auth.accessTokenExpireMinutes", 30)
	v.SetDefault("openai.model", "gpt-4o-mini")

	for key, env := range envBindings {
		// BindEnv only fails when no key is given
		_ = v.BindEnv(key, env)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv() // read in environment variables that match

	return v
}

// serverConfig decodes & validates the loaded config
func serverConfig(v *viper.Viper) (shared.ServerConfig, error) {
	cfg := shared.ServerConfig{}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, formattedError("unable to decode config: %v", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, formattedError("invalid config: %v", err)
	}

	return cfg, nil
}

func formattedError(format string, a ...interface{}) error {
	return fmt.Errorf(red(format), a...)
}
