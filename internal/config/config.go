package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                     string `mapstructure:"PORT"`
	DatabasePath             string `mapstructure:"DATABASE_PATH"`
	GoogleCredentialsFile    string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	SpreadsheetID            string `mapstructure:"SPREADSHEET_ID"`
	SheetName                string `mapstructure:"SHEET_NAME"`
	SyncIntervalMinutes      int    `mapstructure:"SYNC_INTERVAL_MINUTES"`
	DiscordBotToken          string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordAnnounceChannelID string `mapstructure:"DISCORD_ANNOUNCE_CHANNEL_ID"`
	JWTSecret                string `mapstructure:"JWT_SECRET"`
	AdminPassword            string `mapstructure:"ADMIN_PASSWORD"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_PATH", "marathon.db")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("SHEET_NAME", "Data")
	viper.SetDefault("SYNC_INTERVAL_MINUTES", 60)

	viper.BindEnv("SPREADSHEET_ID")
	viper.BindEnv("GOOGLE_CREDENTIALS_FILE")
	viper.BindEnv("SHEET_NAME")
	viper.BindEnv("SYNC_INTERVAL_MINUTES")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_ANNOUNCE_CHANNEL_ID")
	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("ADMIN_PASSWORD")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}
