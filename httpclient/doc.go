// Package httpclient is the small HTTP layer the vendor clients are built on.
//
// It resolves request paths against a base URL, applies authentication and
// default headers, encodes JSON and multipart bodies and classifies failed
// responses into *Error values. Streaming responses are returned unread so
// callers can consume them chunk by chunk.
//
//	client, err := httpclient.New(httpclient.Config{
//	    BaseURL: "https://api.elevenlabs.io",
//	    Auth:    httpclient.APIKeyAuthHeader(key, "xi-api-key"),
//	})
//
//	stream, err := client.DoStream(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/v1/text-to-speech/" + voiceID + "/stream",
//	    Body:   payload,
//	})
//	defer stream.Close()
package httpclient
