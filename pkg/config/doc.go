// Package config loads rex configuration from the environment.
//
// Optional .env files are read first; variables already set in the
// environment keep their values. Any struct with env tags can be loaded:
//
//	var cfg config.Config
//	if err := config.Load(&cfg, ".env"); err != nil {
//	    log.Fatal(err)
//	}
//
//	var extra struct {
//	    StripeKey string `env:"STRIPE_KEY,required"`
//	}
//	config.MustLoad(&extra)
package config
