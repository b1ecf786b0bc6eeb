package config

import (
	"github.com/knadh/koanf/providers/confmap"
)

func DefaultConfig() map[string]interface{} {
	return map[string]interface{}{
		"database": map[string]interface{}{
			"dsn": "reminders.db",
		},
		"delivery": map[string]interface{}{
			"interval":   "1m",
			"batch_size": 100,
		},
		"escalation": map[string]interface{}{
			"interval": "1h",
			"days":     []int{1, 3, 7},
		},
		"smtp": map[string]interface{}{
			"host":     "",
			"port":     587,
			"username": "",
			"password": "",
			"from":     "",
		},
		"telegram": map[string]interface{}{
			"token": "",
		},
	}
}

func NewDefaultProvider() *confmap.Confmap {
	return confmap.Provider(DefaultConfig(), ".")
}
