package config

import "time"

// ImgurConfig содержит настройки клиента Imgur.
type ImgurConfig struct {
	BaseURL  string        `yaml:"base_url" env:"POSTERHUB_IMGUR_BASE_URL" env-default:"https://api.imgur.com"`
	ClientID string        `yaml:"client_id" env:"POSTERHUB_IMGUR_CLIENT_ID" env-default:""`
	Timeout  time.Duration `yaml:"timeout" env:"POSTERHUB_IMGUR_TIMEOUT" env-default:"30s"`
}

// VisionConfig содержит настройки клиента Google Vision.
type VisionConfig struct {
	BaseURL string        `yaml:"base_url" env:"POSTERHUB_VISION_BASE_URL" env-default:"https://vision.googleapis.com"`
	APIKey  string        `yaml:"api_key" env:"POSTERHUB_VISION_API_KEY" env-default:""`
	Timeout time.Duration `yaml:"timeout" env:"POSTERHUB_VISION_TIMEOUT" env-default:"30s"`
}
