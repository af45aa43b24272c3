// Package logger provides structured logging for the plugin using zerolog.
//
// Loggers are scoped by component ("stt", "tts", "plugin") and carry
// structured fields for the provider, model and voice involved in a call.
// Credentials must never be logged verbatim; use MaskSecret.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("tts")
//	log.Info("stream opened", logger.Fields(logger.FieldVoice, voiceID))
package logger
