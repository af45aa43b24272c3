// Package elevenlabs is a minimal client for the ElevenLabs speech APIs:
// Scribe speech-to-text and streaming text-to-speech.
package elevenlabs
