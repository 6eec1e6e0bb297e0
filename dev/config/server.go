package config

// SERVER_YML is the config used when running with --dev
const SERVER_YML = `
raksha:
  cron:
    timeZone: "Asia/Kolkata"
  listener:
    port: 3000
  authRateLimit: "100-M"

auth:
  secretKey: "raksha-dev-secret-key"
  accessTokenExpireMinutes: 30

database:
  driver: sqlcipher
  passPhrase: passphrase

google:
  mapsApiKey:
  applicationCredentials:
  storage:
    bucket: "raksha"
    prefix: "raksha-dev"
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackupAndSync: false

twilio:
  accountSid:
  authToken:
  phoneNumber:

openai:
  apiKey:
  model: gpt-4o-mini

logging:
  production: false
`
