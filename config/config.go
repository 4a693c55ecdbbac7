package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	LogLevel         string
	PostgreSQLConfig PostgreSQLConfig
	MidtransConfig   MidtransConfig
	AppConfig        AppConfig
	MailConfig       MailConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	ReconcileConfig  ReconcileConfig
	NotificationJWT  string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "9090"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		MidtransConfig: MidtransConfig{
			ServerKey:                 os.Getenv("MIDTRANS_SERVER_KEY"),
			ClientKey:                 os.Getenv("MIDTRANS_CLIENT_KEY"),
			MerchantID:                os.Getenv("MIDTRANS_MERCHANT_ID"),
			IsProduction:              getBool("MIDTRANS_IS_PRODUCTION", false),
			SnapURL:                   os.Getenv("MIDTRANS_SNAP_URL"),
			APIURL:                    os.Getenv("MIDTRANS_API_URL"),
			RejectOnSignatureMismatch: getBool("MIDTRANS_REJECT_INVALID_SIGNATURE", false),
			Timeout:                   getDuration("MIDTRANS_TIMEOUT", 30*time.Second),
		},
		AppConfig: AppConfig{
			Name:           getEnv("APP_NAME", "QuadraPlay"),
			DeepLinkScheme: getEnv("APP_DEEP_LINK_SCHEME", "quadraplay"),
			SupportPhone:   getEnv("APP_SUPPORT_PHONE", "08123456789"),
		},
		MailConfig: MailConfig{
			SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPUsername: os.Getenv("SMTP_USERNAME"),
			SMTPPassword: os.Getenv("SMTP_PASSWORD"),
			FromEmail:    os.Getenv("MAIL_FROM_EMAIL"),
			FromName:     getEnv("MAIL_FROM_NAME", "QuadraPlay"),
			SendmailPath: getEnv("SENDMAIL_PATH", "/usr/sbin/sendmail"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   getEnv("BROKER_TOPIC", "payment-events"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		ReconcileConfig: ReconcileConfig{
			Interval:   getDuration("RECONCILE_INTERVAL", 5*time.Minute),
			StaleAfter: getDuration("RECONCILE_STALE_AFTER", 15*time.Minute),
			BatchSize:  50,
		},
		NotificationJWT: os.Getenv("NOTIFICATION_JWT_SECRET"),
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "465"))
	if err != nil {
		smtpPort = 465
	}
	conf.MailConfig.SMTPPort = smtpPort

	if conf.MailConfig.FromEmail == "" {
		conf.MailConfig.FromEmail = conf.MailConfig.SMTPUsername
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
