package config

import "time"

type PostgreSQLConfig struct {
	DBHost     string
	DBName     string
	DBPort     string
	DBUsername string
	DBPassword string
}

type MidtransConfig struct {
	ServerKey  string
	ClientKey  string
	MerchantID string
	// IsProduction selects the production Snap/API endpoints when SnapURL/APIURL are empty.
	IsProduction bool
	SnapURL      string
	APIURL       string
	// RejectOnSignatureMismatch makes a webhook with a bad signature fail with 403 instead of
	// being logged and applied.
	RejectOnSignatureMismatch bool
	Timeout                   time.Duration
}

type AppConfig struct {
	Name           string
	DeepLinkScheme string
	SupportPhone   string
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromEmail    string
	FromName     string
	SendmailPath string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type ReconcileConfig struct {
	Interval   time.Duration
	StaleAfter time.Duration
	BatchSize  int
}
