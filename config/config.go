package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Gemini    GeminiConfig    `yaml:"gemini"`
	BrainDump BrainDumpConfig `yaml:"brain_dump"`

	// DevUserID is a local fallback identity used when no auth proxy sets
	// the X-User-Id header. Never set in production.
	DevUserID string `yaml:"dev_user_id"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AllowedOrigins feeds the CORS wrapper. Empty means same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type MongoConfig struct {
	URI    string `yaml:"uri"`
	DBName string `yaml:"db_name"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers string `yaml:"brokers"`
	Topic   string `yaml:"topic"`
}

// GeminiConfig names the models used per call site. The API key itself comes
// from the GEMINI_API_KEY environment variable, never from the yaml file.
type GeminiConfig struct {
	BriefModel      string `yaml:"brief_model"`
	DraftModel      string `yaml:"draft_model"`
	TranscribeModel string `yaml:"transcribe_model"`
}

type BrainDumpConfig struct {
	// MockBrief derives briefs deterministically from the transcript without
	// calling the generation backend. Also switchable via the
	// BRAIN_DUMP_MOCK_BRIEF environment variable.
	MockBrief bool `yaml:"mock_brief"`
	// LanguageHint is passed to the speech backend (e.g. "da").
	LanguageHint string `yaml:"language_hint"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	applyDefaults(&c)
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

// MockBriefEnabled honors the env override over the yaml value.
func (c AppConfig) MockBriefEnabled() bool {
	if v := os.Getenv("BRAIN_DUMP_MOCK_BRIEF"); v != "" {
		return v == "true" || v == "1"
	}
	return c.BrainDump.MockBrief
}

func applyDefaults(c *AppConfig) {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Mongo.DBName == "" {
		c.Mongo.DBName = "dellerose"
	}
	if c.Gemini.BriefModel == "" {
		c.Gemini.BriefModel = "gemini-2.0-flash"
	}
	if c.Gemini.DraftModel == "" {
		c.Gemini.DraftModel = c.Gemini.BriefModel
	}
	if c.Gemini.TranscribeModel == "" {
		c.Gemini.TranscribeModel = c.Gemini.BriefModel
	}
	if c.BrainDump.LanguageHint == "" {
		c.BrainDump.LanguageHint = "da"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "dellerose.workflow.events"
	}
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
