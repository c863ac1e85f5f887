package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"America/Sao_Paulo"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	Remote struct {
		URL            string        `env:"CLINIC_API_URL" envDefault:"http://localhost:8081"`
		RequestTimeout time.Duration `env:"CLINIC_API_TIMEOUT" envDefault:"10s"`
	}

	Storage struct {
		Dir string `env:"STORAGE_DIR" envDefault:".clinic-data-gateway"`
	}

	Appointments struct {
		// Session length applied when a booking has no explicit end time.
		DefaultDurationMinutes int `env:"APPOINTMENT_DEFAULT_DURATION" envDefault:"60"`
	}

	RabbitMQ struct {
		Enabled bool   `env:"RABBITMQ_ENABLED"`
		AmqpUri string `env:"RABBITMQ_URL"`

		QueueConfig struct {
			Exchange             string `env:"RABBITMQ_EXCHANGE" envDefault:"clinic.cache"`
			AppointmentQueueName string `env:"RABBITMQ_APPOINTMENT_QUEUE" envDefault:"clinic.cache.appointment"`
			AppointmentQueueBind string `env:"RABBITMQ_APPOINTMENT_BIND" envDefault:"*.*.appointment.*"`
			PatientQueueName     string `env:"RABBITMQ_PATIENT_QUEUE" envDefault:"clinic.cache.patient"`
			PatientQueueBind     string `env:"RABBITMQ_PATIENT_BIND" envDefault:"*.*.patient.*"`
			FinanceQueueName     string `env:"RABBITMQ_FINANCE_QUEUE" envDefault:"clinic.cache.finance"`
			FinanceQueueBind     string `env:"RABBITMQ_FINANCE_BIND" envDefault:"*.*.payment.*"`
			PayerQueueBind       string `env:"RABBITMQ_PAYER_BIND" envDefault:"*.*.payer.*"`
			AllQueueName         string `env:"RABBITMQ_ALL_QUEUE" envDefault:"clinic.cache._all_"`
			AllQueueBind         string `env:"RABBITMQ_ALL_BIND" envDefault:"*.*._all_.*"`
		}

		// Redeliveries are deduplicated by message id through an LRU window.
		DedupSize int `env:"RABBITMQ_DEDUP_SIZE" envDefault:"1000"`
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
