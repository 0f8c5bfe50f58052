package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Data    DataConfig    `mapstructure:"data"`
	Cron    CronConfig    `mapstructure:"cron"`
	ESPN    ESPNConfig    `mapstructure:"espn"`
	OddsAPI OddsAPIConfig `mapstructure:"odds_api"`
	Model   ModelConfig   `mapstructure:"model"`
	Picks   PicksConfig   `mapstructure:"picks"`
	Grading GradingConfig `mapstructure:"grading"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DataConfig struct {
	GamesFile      string `mapstructure:"games_file"`
	PredictionsDir string `mapstructure:"predictions_dir"`
	ParlaysDir     string `mapstructure:"parlays_dir"`
	ResultsFile    string `mapstructure:"results_file"`
	ModelDir       string `mapstructure:"model_dir"`
}

type CronConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Ingest   string `mapstructure:"ingest"`
	Scoring  string `mapstructure:"scoring"`
	Tracking string `mapstructure:"tracking"`
}

type ESPNConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	DayDelay    time.Duration `mapstructure:"day_delay"`
	SeasonStart string        `mapstructure:"season_start"`
}

type OddsAPIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Sport     string        `mapstructure:"sport"`
	Regions   string        `mapstructure:"regions"`
	Bookmaker string        `mapstructure:"bookmaker"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type ModelConfig struct {
	Window         int     `mapstructure:"window"`
	MinHistory     int     `mapstructure:"min_history"`
	TestFraction   float64 `mapstructure:"test_fraction"`
	RidgeLambda    float64 `mapstructure:"ridge_lambda"`
	ShuffleSeed    int64   `mapstructure:"shuffle_seed"`
	RetrainOnStart bool    `mapstructure:"retrain_on_start"`
}

type PicksConfig struct {
	TopK           int     `mapstructure:"top_k"`
	DirectionBand  float64 `mapstructure:"direction_band"`
	HighConfidence float64 `mapstructure:"high_confidence"`
}

type GradingConfig struct {
	Threshold    float64 `mapstructure:"threshold"`
	PayoutPerWin float64 `mapstructure:"payout_per_win"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("Q1")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("data.games_file", "data/historical_games.csv")
	v.SetDefault("data.predictions_dir", "predictions")
	v.SetDefault("data.parlays_dir", "parlays")
	v.SetDefault("data.results_file", "predictions/results.csv")
	v.SetDefault("data.model_dir", "models")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.ingest", "0 30 10 * * *")
	v.SetDefault("cron.scoring", "0 0 16 * * *")
	v.SetDefault("cron.tracking", "@every 30m")
	v.SetDefault("espn.base_url", "https://site.api.espn.com")
	v.SetDefault("espn.timeout", "10s")
	v.SetDefault("espn.day_delay", "1s")
	v.SetDefault("espn.season_start", "2025-10-22")
	v.SetDefault("odds_api.base_url", "https://api.the-odds-api.com")
	v.SetDefault("odds_api.sport", "basketball_nba")
	v.SetDefault("odds_api.regions", "us")
	v.SetDefault("odds_api.bookmaker", "draftkings")
	v.SetDefault("odds_api.timeout", "15s")
	v.SetDefault("model.window", 5)
	v.SetDefault("model.min_history", 10)
	v.SetDefault("model.test_fraction", 0.2)
	v.SetDefault("model.ridge_lambda", 1.0)
	v.SetDefault("model.shuffle_seed", 42)
	v.SetDefault("model.retrain_on_start", false)
	v.SetDefault("picks.top_k", 3)
	v.SetDefault("picks.direction_band", 2.0)
	v.SetDefault("picks.high_confidence", 3.0)
	v.SetDefault("grading.threshold", 52.5)
	v.SetDefault("grading.payout_per_win", 0.91)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
