/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"
	"strings"
	"time"

	"dirpx.dev/errcode/logx"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the service configuration. Values come from, in increasing
// priority: defaults, the optional config file, ERRCODE_* environment
// variables (an optional .env file is loaded into the environment first).
type Config struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
	Log               logx.Config   `mapstructure:"log"`
	HTTPOverrides     []Override    `mapstructure:"http_overrides"`
}

// Override pins the HTTP status of one full code. It is a list entry rather
// than a map key because viper lower-cases keys and codes are
// case-sensitive.
type Override struct {
	Code   string `mapstructure:"code"`
	Status int    `mapstructure:"status"`
}

func loadConfig(file, envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load env file %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("addr", "0.0.0.0:8080")
	v.SetDefault("read_header_timeout", 5*time.Second)
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.no_color", false)
	v.SetDefault("log.timestamp", true)

	v.SetEnvPrefix("ERRCODE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.Log.ApplyDefaults()
	if err := cfg.Log.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
