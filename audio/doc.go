// Package audio holds captured PCM audio and renders it as WAV.
//
// The host hands speech-to-text adapters a Source; adapters ask it for a
// mono WAV rendering at the rate and sample width the vendor expects.
package audio
