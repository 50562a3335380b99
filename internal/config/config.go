package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, falling back to system environment variables")
	}
}

// Config holds everything the bot reads from the environment. Phrase lists
// and buffer sizes are injected from here instead of being hard-coded at
// their use sites.
type Config struct {
	DiscordToken   string   `env:"DISCORD_TOKEN,required"`
	StoragePath    string   `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix  string   `env:"COMMAND_PREFIX" envDefault:"!"`
	GuildBlacklist []string `env:"GUILD_BLACKLIST" envSeparator:","`

	WakePhrases []string `env:"WAKE_PHRASES" envSeparator:"," envDefault:"cab,celestial,celestial artisans bot"`
	SleepPhrase string   `env:"SLEEP_PHRASE" envDefault:"cab sleep"`

	RecentLimit  int `env:"RECENT_LIMIT" envDefault:"5"`
	ThoughtLimit int `env:"THOUGHT_LIMIT" envDefault:"5"`
	KeywordCap   int `env:"KEYWORD_CAP" envDefault:"4096"`

	ResearchTimeout  time.Duration `env:"RESEARCH_TIMEOUT" envDefault:"8s"`
	FreezeClassifier bool          `env:"FREEZE_CLASSIFIER" envDefault:"false"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("[ERR] Config parse failed: %v", err)
	}
	return cfg
}
