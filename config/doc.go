// Package config loads service configuration with viper.
//
// Values are layered in this order, later sources winning:
// defaults registered by the caller, the YAML config file, a .env file
// (loaded with godotenv into the process environment), and finally
// environment variables. Variables prefixed with the service's env prefix
// (FLOWSYNTH_LLM_MODEL) map onto nested keys (llm.model); explicit aliases
// bind well-known names such as ANTHROPIC_API_KEY.
package config
