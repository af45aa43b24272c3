// Package errors provides the plugin's error taxonomy.
//
// Every failure surfaced to the host is an *AppError carrying one of three
// codes: the vendor integration could not be brought up, the host supplied an
// unusable configuration, or a remote speech call failed. Callers match on the
// code with the Is* helpers rather than on message text.
package errors
