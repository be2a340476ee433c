package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// AppName names the per-user data directory.
const AppName = "GestorPro"

type Config struct {
	Port         string
	DataDir      string
	SessionDSN   string
	LogFile      string
	TemplatesDir string
}

// UserDataDir is the per-user data location the desktop shell used to hand
// out: the OS config dir plus the app name. Falls back to ./data/GestorPro
// when the OS has no home/config dir (containers, CI).
func UserDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return filepath.Join("data", AppName)
	}
	return filepath.Join(base, AppName)
}

func Load() Config {
	// .env is optional
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = UserDataDir()
	}
	dsn := os.Getenv("SESSION_DSN")
	if dsn == "" {
		dsn = filepath.Join(dataDir, "session.db")
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = filepath.Join(dataDir, "gestorpro.log")
	}
	tmpl := os.Getenv("TEMPLATES_DIR")
	if tmpl == "" {
		tmpl = "./web/templates"
	}

	cfg := Config{Port: port, DataDir: dataDir, SessionDSN: dsn, LogFile: logFile, TemplatesDir: tmpl}
	log.Printf("[config] PORT=%s DATA_DIR=%s SESSION_DSN=%s LOG_FILE=%s TEMPLATES_DIR=%s",
		cfg.Port, cfg.DataDir, cfg.SessionDSN, cfg.LogFile, cfg.TemplatesDir)
	return cfg
}
