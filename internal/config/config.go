// Package config enumerates the process configuration the assistant reads
// from the environment, with defaults for everything that has one.
package config

import "os"

// Env variable names.
const (
	EnvOpenWeatherAPIKey = "OPENWEATHER_API_KEY"

	EnvDeepgramModel    = "DEEPGRAM_MODEL"
	EnvDeepgramLanguage = "DEEPGRAM_LANGUAGE"
	EnvElevenVoiceID    = "ELEVEN_VOICE_ID"
	EnvElevenModelID    = "ELEVENLABS_MODEL_ID"
	EnvAzureDeployment  = "AZURE_OPENAI_DEPLOYMENT"

	EnvLiveKitURL       = "LIVEKIT_URL"
	EnvLiveKitAPIKey    = "LIVEKIT_API_KEY"
	EnvLiveKitAPISecret = "LIVEKIT_API_SECRET"

	EnvTimezone      = "ASSISTANT_TIMEZONE"
	EnvAgentIdentity = "ASSISTANT_IDENTITY"
	EnvChatTopic     = "CHAT_TOPIC"
	EnvContextTopic  = "AGENT_CONTEXT_TOPIC"
)

// Config carries every environment-supplied value the process uses. The
// speech pipeline identifiers are not consumed locally; they are handed to
// the external pipeline through the room participant metadata.
type Config struct {
	OpenWeatherAPIKey string

	DeepgramModel    string
	DeepgramLanguage string
	ElevenVoiceID    string
	ElevenModelID    string
	AzureDeployment  string

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	Timezone      string
	AgentIdentity string
	ChatTopic     string
	ContextTopic  string
}

// Load reads the environment. Call after godotenv has run.
func Load() *Config {
	return &Config{
		OpenWeatherAPIKey: os.Getenv(EnvOpenWeatherAPIKey),

		DeepgramModel:    getenv(EnvDeepgramModel, "nova-2"),
		DeepgramLanguage: getenv(EnvDeepgramLanguage, "hi"),
		ElevenVoiceID:    getenv(EnvElevenVoiceID, "21m00Tcm4TlvDq8ikWAM"),
		ElevenModelID:    getenv(EnvElevenModelID, "eleven_multilingual_v2"),
		AzureDeployment:  os.Getenv(EnvAzureDeployment),

		LiveKitURL:       os.Getenv(EnvLiveKitURL),
		LiveKitAPIKey:    os.Getenv(EnvLiveKitAPIKey),
		LiveKitAPISecret: os.Getenv(EnvLiveKitAPISecret),

		Timezone:      getenv(EnvTimezone, "Asia/Kolkata"),
		AgentIdentity: getenv(EnvAgentIdentity, "lisa"),
		ChatTopic:     getenv(EnvChatTopic, "chat"),
		ContextTopic:  getenv(EnvContextTopic, "agent-context"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
