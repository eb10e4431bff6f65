// README: Config loader with env defaults for HTTP, providers, Maps, Redis, and rate limits.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Gemini struct {
		APIKey string
		Model  string
	}
	SiliconFlow struct {
		APIKey  string
		BaseURL string
		Model   string
	}
	Maps struct {
		APIKey string
	}
	Redis struct {
		Addr string
	}
	Session struct {
		TTLMinutes int
	}
	Rate struct {
		RPS   float64
		Burst int
	}
}

// Load reads configuration from the environment. Provider API keys may be
// empty here; a missing key only becomes an error when that provider is
// actually selected for a generation request.
func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("WAYFARER_HTTP_ADDR", ":8080")
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = envOrDefault("GEMINI_MODEL", "gemini-2.0-flash")
	cfg.SiliconFlow.APIKey = os.Getenv("SILICONFLOW_API_KEY")
	cfg.SiliconFlow.BaseURL = envOrDefault("SILICONFLOW_BASE_URL", "https://api.siliconflow.cn/v1")
	cfg.SiliconFlow.Model = envOrDefault("SILICONFLOW_MODEL", "deepseek-ai/DeepSeek-V3")
	cfg.Maps.APIKey = os.Getenv("MAPS_API_KEY")
	cfg.Redis.Addr = os.Getenv("WAYFARER_REDIS_ADDR")
	cfg.Session.TTLMinutes = envOrDefaultInt("WAYFARER_SESSION_TTL_MIN", 120)
	cfg.Rate.RPS = envOrDefaultFloat("WAYFARER_RATE_RPS", 0.2)
	cfg.Rate.Burst = envOrDefaultInt("WAYFARER_RATE_BURST", 3)
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envOrDefaultFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}
