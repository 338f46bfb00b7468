package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Data      DataConfig      `mapstructure:"data"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Reminders RemindersConfig `mapstructure:"reminders"`
}

type DataConfig struct {
	Directory string `mapstructure:"directory" validate:"required,dir"`
}

// ProfilePath is the profile document location.
func (c DataConfig) ProfilePath() string {
	return filepath.Join(c.Directory, "profile.json")
}

// QuestionsPath is the question log document location.
func (c DataConfig) QuestionsPath() string {
	return filepath.Join(c.Directory, "questions.json")
}

// PlansPath is the study plans document location.
func (c DataConfig) PlansPath() string {
	return filepath.Join(c.Directory, "plans.json")
}

// ReportsDirectory is where exported progress reports land.
func (c DataConfig) ReportsDirectory() string {
	return filepath.Join(c.Directory, "reports")
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type RemindersConfig struct {
	Hour int `mapstructure:"hour" validate:"min=0,max=23"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/studypal")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("data.directory", "data")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("reminders.hour", 20)

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
