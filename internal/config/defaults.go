package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/scout/data/entities.db"
	}
	if cfg.Storage.AnalyticsPath == "" {
		cfg.Storage.AnalyticsPath = "/usr/local/var/scout/data/analytics.db"
	}
	if cfg.Search.DefaultPageSize == 0 {
		cfg.Search.DefaultPageSize = 20
	}
	if cfg.Search.MaxPageSize == 0 {
		cfg.Search.MaxPageSize = 100
	}
	if cfg.Search.DefaultSuggestions == 0 {
		cfg.Search.DefaultSuggestions = 10
	}
	if cfg.Search.MaxSuggestions == 0 {
		cfg.Search.MaxSuggestions = 25
	}
	if cfg.Search.DefaultPopularTerms == 0 {
		cfg.Search.DefaultPopularTerms = 10
	}
	if cfg.Search.MaxPopularTerms == 0 {
		cfg.Search.MaxPopularTerms = 50
	}
	cfg.Relevance.ApplyDefaults()
}
