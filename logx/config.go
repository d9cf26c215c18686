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

package logx

import "fmt"

// Config contains logging configuration. The mapstructure tags let it be
// decoded straight out of a viper section.
type Config struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	Output    string `yaml:"output" mapstructure:"output"`
	NoColor   bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp bool   `yaml:"timestamp" mapstructure:"timestamp"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.Output == "" {
		c.Output = "stdout"
	}
}

// Validate checks level, format and output names.
func (c *Config) Validate() error {
	if !oneOf(c.Level, "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled") {
		return fmt.Errorf("logx: level must be one of trace, debug, info, warn, error, fatal, panic, disabled (got: %q)", c.Level)
	}
	if !oneOf(c.Format, "json", "console") {
		return fmt.Errorf("logx: format must be json or console (got: %q)", c.Format)
	}
	if !oneOf(c.Output, "stdout", "stderr") {
		return fmt.Errorf("logx: output must be stdout or stderr (got: %q)", c.Output)
	}
	return nil
}

func oneOf(v string, set ...string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
