package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/formpilot/formpilot-backend/pkg/apihelpers"
	"github.com/formpilot/formpilot-backend/pkg/db"
	"github.com/formpilot/formpilot-backend/pkg/messaging"
	"github.com/formpilot/formpilot-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v2"

	formDB "github.com/formpilot/formpilot-backend/pkg/db/form"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" in the config file
	ENV_FORM_DB_USERNAME = "FORM_DB_USERNAME"
	ENV_FORM_DB_PASSWORD = "FORM_DB_PASSWORD"

	ENV_RESPONDENT_SESSION_JWT_SIGN_KEY = "RESPONDENT_SESSION_JWT_SIGN_KEY"
)

type FormApiConfig struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// Gin configs
	GinConfig struct {
		DebugMode    bool     `json:"debug_mode" yaml:"debug_mode"`
		AllowOrigins []string `json:"allow_origins" yaml:"allow_origins"`
		Port         string   `json:"port" yaml:"port"`

		// Mutual TLS configs
		MTLS struct {
			Use              bool                        `json:"use" yaml:"use"`
			CertificatePaths apihelpers.CertificatePaths `json:"certificate_paths" yaml:"certificate_paths"`
		} `json:"mtls" yaml:"mtls"`
	} `json:"gin_config" yaml:"gin_config"`

	AllowedInstanceIDs []string `json:"allowed_instance_ids" yaml:"allowed_instance_ids"`

	// DB configs
	DBConfigs struct {
		FormDB db.DBConfigYaml `json:"form_db" yaml:"form_db"`
	} `json:"db_configs" yaml:"db_configs"`

	// API keys accepted on the form builder endpoints
	BuilderAPIKeys []string `json:"builder_api_keys" yaml:"builder_api_keys"`

	RespondentSessionConfig struct {
		SignKey   string `json:"sign_key" yaml:"sign_key"`
		ExpiresIn string `json:"expires_in" yaml:"expires_in"`
	} `json:"respondent_session_config" yaml:"respondent_session_config"`

	// Path to the SMTP server list used for completion confirmation emails;
	// leave empty to disable email sending.
	SmtpServerConfigPath string `json:"smtp_server_config_path" yaml:"smtp_server_config_path"`
}

var (
	formDBService             *formDB.FormDBService
	smtpClients               *messaging.SmtpClients
	respondentSessionTokenTTL time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging)

	// Override secrets from environment variables
	secretsOverride()

	if conf.RespondentSessionConfig.SignKey == "" {
		panic("respondent session token sign key not set")
	}

	respondentSessionTokenTTL, err = utils.ParseDurationString(conf.RespondentSessionConfig.ExpiresIn)
	if err != nil {
		slog.Warn("invalid session token TTL, using default of 6h", slog.String("value", conf.RespondentSessionConfig.ExpiresIn))
		respondentSessionTokenTTL = 6 * time.Hour
	}

	// Init DBs
	initDBs()

	initSmtpClients()

	if !conf.GinConfig.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_FORM_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.FormDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_FORM_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.FormDB.Password = dbPassword
	}

	if sessionJwtSignKey := os.Getenv(ENV_RESPONDENT_SESSION_JWT_SIGN_KEY); sessionJwtSignKey != "" {
		conf.RespondentSessionConfig.SignKey = sessionJwtSignKey
	}
}

func initDBs() {
	var err error
	formDBService, err = formDB.NewFormDBService(db.DBConfigFromYamlObj(conf.DBConfigs.FormDB, conf.AllowedInstanceIDs))
	if err != nil {
		slog.Error("Error connecting to Form DB", slog.String("error", err.Error()))
		return
	}
}

func initSmtpClients() {
	if conf.SmtpServerConfigPath == "" {
		slog.Info("no SMTP server config set, completion emails disabled")
		return
	}

	var serverList messaging.SmtpServerList
	if err := serverList.ReadFromFile(conf.SmtpServerConfigPath); err != nil {
		slog.Error("could not load SMTP server config", slog.String("error", err.Error()))
		return
	}

	var err error
	smtpClients, err = messaging.NewSmtpClients(serverList)
	if err != nil {
		slog.Error("could not init SMTP clients", slog.String("error", err.Error()))
	}
}
