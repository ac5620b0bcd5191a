package util

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// the config file is optional, defaults are set at the use sites
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
