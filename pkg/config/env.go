package config

const (
	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvStorageBackend = "STORAGE_BACKEND"

	EnvDatabaseURL       = "DATABASE_URL"
	EnvDBMaxOpenConns    = "DB_MAX_OPEN_CONNS"
	EnvDBMaxIdleConns    = "DB_MAX_IDLE_CONNS"
	EnvDBConnMaxLifetime = "DB_CONN_MAX_LIFETIME"

	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvEventsEnabled        = "EVENTS_ENABLED"
	EnvReservationsTopic    = "RESERVATIONS_TOPIC"
	EnvReservationsDLQTopic = "RESERVATIONS_DLQ_TOPIC"
	EnvEventPublishTimeout  = "EVENT_PUBLISH_TIMEOUT"

	EnvNotifierGroupID    = "NOTIFIER_GROUP_ID"
	EnvTwilioAccountSID   = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken    = "TWILIO_AUTH_TOKEN"
	EnvTwilioFromNumber   = "TWILIO_FROM_NUMBER"
	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"
	EnvRestaurantName     = "RESTAURANT_NAME"
)
