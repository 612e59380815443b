package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Dataset sources selectable with DATA_SOURCE.
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	DataSource     string
	DataFile       string
	Background     string
	MySQLDSN       string
	RequestTimeout time.Duration
	RenderRPS      float64
	ImportWorkers  int
	ImportBatch    int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-integer setting")
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
			log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		DataSource:     env("DATA_SOURCE", SourceCSV),
		DataFile:       env("DATA_FILE", "cleaned_hotels_data.csv"),
		Background:     env("BACKGROUND_IMAGE", "Hotelbackground.jpeg"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/hotels?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RequestTimeout: time.Duration(atoi("REQUEST_TIMEOUT_SECONDS", 15)) * time.Second,
		RenderRPS:      atof("RENDER_RPS", 20),
		ImportWorkers:  atoi("IMPORT_WORKERS", 4),
		ImportBatch:    atoi("IMPORT_BATCH", 200),
	}
	if c.DataSource != SourceCSV && c.DataSource != SourceMySQL {
		log.Warn().Str("source", c.DataSource).Msg("unknown DATA_SOURCE, using csv")
		c.DataSource = SourceCSV
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
