package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ExtractorMutool = "mutool"
	ExtractorNative = "native"

	FormatTXT  = "txt"
	FormatHTML = "html"
)

type Config struct {
	DBPath  string
	Persist bool

	MutoolPath        string
	Extractor         string
	ExtractFormat     string
	ExtractTimeoutSec int

	// Pages of the manual holding the register address list (HM-60506E
	// chapter 8).
	Pages     string
	CSVOut    string
	HPPOut    string
	CPPOut    string
	XLSXOut   string
	CPPPrefix string

	LogLevel  string
	LogFormat string
}

var pagesPattern = regexp.MustCompile(`^\d+(-\d+)?$`)

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:  getEnv("DB_PATH", filepath.Join(cwd, "data", "regmap.db")),
		Persist: getEnvBool("PERSIST", true),

		MutoolPath:        getEnv("MUTOOL_PATH", "mutool"),
		Extractor:         strings.ToLower(getEnv("EXTRACTOR", ExtractorMutool)),
		ExtractFormat:     strings.ToLower(getEnv("EXTRACT_FORMAT", FormatTXT)),
		ExtractTimeoutSec: getEnvInt("EXTRACT_TIMEOUT_SEC", 120),

		Pages:     getEnv("REGMAP_PAGES", "227-242"),
		CSVOut:    getEnv("CSV_OUT", filepath.Join("Server", "resources", "ArKd2RegisterMap.csv")),
		HPPOut:    getEnv("HPP_OUT", filepath.Join("Server", "include", "ArKd2FullRegisterMap.hpp")),
		CPPOut:    getEnv("CPP_OUT", filepath.Join("Server", "src", "ArKd2FullRegisterMap.cpp")),
		XLSXOut:   getEnv("XLSX_OUT", ""),
		CPPPrefix: getEnv("CPP_PREFIX", "ArKd2"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Extractor {
	case ExtractorMutool, ExtractorNative:
	default:
		return fmt.Errorf("unsupported extractor: %s", c.Extractor)
	}
	switch c.ExtractFormat {
	case FormatTXT, FormatHTML:
	default:
		return fmt.Errorf("unsupported extract format: %s", c.ExtractFormat)
	}
	if !pagesPattern.MatchString(strings.TrimSpace(c.Pages)) {
		return fmt.Errorf("invalid page range: %q", c.Pages)
	}
	if c.Persist {
		return c.Require("DB_PATH", c.DBPath)
	}
	return nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

// NewLogger builds the process logger. Logs go to stderr so stdout stays
// reserved for command output.
func NewLogger(c Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
