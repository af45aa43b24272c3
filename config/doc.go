// Package config loads the plugin's runtime configuration.
//
// Values come from an optional config.yml, an optional .env file and the
// process environment, in increasing order of precedence. Environment
// variables map onto nested keys by splitting on underscores, so
// ELEVENLABS_BASE_URL sets elevenlabs.base_url.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	logger.Init(cfg.Logging, cfg.Name)
package config
