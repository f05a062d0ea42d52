package repository

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

func NewConfigRepository(path string) (*Config, error) {
	viper.SetConfigFile(path)

	viper.AutomaticEnv()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("listen", ":8080")
	viper.SetDefault("ecs.default_service", "my-service")
	viper.SetDefault("kafka.group_id", "aira")
	viper.SetDefault("ai.model", "gpt-4")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("read config error: %w", err)
	}

	var c Config
	err = viper.Unmarshal(&c)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	valid := validator.New()
	if err = valid.Struct(c); err != nil {
		return nil, fmt.Errorf("validate config error: %w", err)
	}

	return &c, nil
}

type Config struct {
	Listen string       `mapstructure:"listen"`
	Slack  SlackConfig  `mapstructure:"slack"`
	ECS    ECSConfig    `mapstructure:"ecs"`
	Dynamo DynamoConfig `mapstructure:"dynamo"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	AI     AIConfig     `mapstructure:"ai"`
}

type SlackConfig struct {
	DefaultChannel string `mapstructure:"default_channel" validate:"required"`
}

type ECSConfig struct {
	Cluster        string `mapstructure:"cluster" validate:"required"`
	DefaultService string `mapstructure:"default_service"`
}

// DynamoConfig selects the timeline backend. An empty table name keeps the
// timeline in memory, which only makes sense for local runs.
type DynamoConfig struct {
	TimelineTable string `mapstructure:"timeline_table"`
}

// KafkaConfig enables the event-bus alert source when Brokers is set.
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}

type AIConfig struct {
	Model string `mapstructure:"model"`
}
