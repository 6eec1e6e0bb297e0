package shared

type ServerConfig struct {
	Raksha   RakshaConfig   `mapstructure:"raksha" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Twilio   TwilioConfig   `mapstructure:"twilio"`
	Google   GoogleConfig   `mapstructure:"google"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type RakshaConfig struct {
	Listener      ListenerConfig `mapstructure:"listener" validate:"required"`
	Cron          CronConfig     `mapstructure:"cron"`
	AuthRateLimit string         `mapstructure:"authRateLimit" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone"`
}

// DatabaseConfig selects the gorm dialector. Dir & PassPhrase apply to the sqlite
// drivers, DSN to postgres & mysql.
type DatabaseConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=sqlcipher sqlite postgres mysql"`
	Dir        string `mapstructure:"dir"`
	PassPhrase string `mapstructure:"passPhrase"`
	DSN        string `mapstructure:"dsn"`
}

type AuthConfig struct {
	SecretKey                string `mapstructure:"secretKey" validate:"required_without=PrivateKeyPem"`
	PrivateKeyPem            string `mapstructure:"privateKeyPem"`
	AccessTokenExpireMinutes int    `mapstructure:"accessTokenExpireMinutes" validate:"required,min=1"`
}

type TwilioConfig struct {
	AccountSid          string `mapstructure:"accountSid"`
	AuthToken           string `mapstructure:"authToken"`
	PhoneNumber         string `mapstructure:"phoneNumber"`
	MessagingServiceSid string `mapstructure:"messagingServiceSid"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	MapsAPIKey             string        `mapstructure:"mapsApiKey"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket" validate:"required_with=EnableSqliteBackupAndSync"`
	Prefix                    string `mapstructure:"prefix" validate:"required_with=EnableSqliteBackupAndSync"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule" validate:"required_with=EnableSqliteBackupAndSync"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"apiKey"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"baseUrl"`
}

type LoggingConfig struct {
	Production bool   `mapstructure:"production"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"maxSizeMB"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAgeDays"`
}
