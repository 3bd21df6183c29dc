// Copyright 2025 The casaflow Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/casaflow-io/casaflow/pkg/cflog"
)

type Config struct {
	Addr           string        `mapstructure:"addr"`
	UploadEndpoint string        `mapstructure:"uploadEndpoint"`
	UploadDir      string        `mapstructure:"uploadDir"`
	LogLevel       string        `mapstructure:"logLevel"`
	RedisAddr      string        `mapstructure:"redisAddr"`
	CacheTTL       time.Duration `mapstructure:"cacheTTL"`
	SweepInterval  time.Duration `mapstructure:"sweepInterval"`
	MaxUploadBytes int64         `mapstructure:"maxUploadBytes"`
	MaxImageWidth  int           `mapstructure:"maxImageWidth"`
}

var (
	once sync.Once

	mu sync.RWMutex

	config Config
)

func InitConfig() error {
	var initErr error
	once.Do(func() {
		initErr = LoadAndWatch()
	})
	return initErr
}

func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return config
}

func LoadAndWatch() error {
	pflag.String("addr", "", "HTTP service address (e.g., '127.0.0.1:9090')")
	pflag.String("uploadEndpoint", "", "Photo upload endpoint URL")
	pflag.String("uploadDir", "", "Local fallback dir for uploaded files")
	pflag.String("logLevel", "", "Log level (debug/info/warn/error/fatal)")
	pflag.String("redisAddr", "", "Redis address for photo metadata")
	pflag.Parse()

	if err := viper.BindPFlags(pflag.CommandLine); err != nil {
		return fmt.Errorf("failed to bind pflags: %w", err)
	}

	viper.SetDefault("addr", "127.0.0.1:8090")
	viper.SetDefault("uploadDir", "./uploads")
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("redisAddr", "localhost:6379")
	viper.SetDefault("cacheTTL", "5m")
	viper.SetDefault("sweepInterval", "10m")
	viper.SetDefault("maxUploadBytes", 5<<20)
	viper.SetDefault("maxImageWidth", 1920)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/casaflow/")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			cflog.Infof("Config file not found, using defaults.")
		} else {
			return fmt.Errorf("fatal error config file: %w", err)
		}
	}

	mu.Lock()
	if err := viper.Unmarshal(&config); err != nil {
		mu.Unlock()
		return fmt.Errorf("the initial configuration cannot be decoded into the struct: %w", err)
	}
	mu.Unlock()

	viper.OnConfigChange(func(e fsnotify.Event) {
		cflog.Infof("Config file changed: %s, reloading...", e.Name)

		mu.Lock()
		defer mu.Unlock()

		if err := viper.Unmarshal(&config); err != nil {
			cflog.Errorf("Error reloading the configuration: %v", err)
		} else {
			cflog.Infof("Configuration reloaded.")
		}
	})
	viper.WatchConfig()

	return nil
}
