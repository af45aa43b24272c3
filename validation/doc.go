// Package validation checks host-supplied settings and plugin configuration.
//
// Struct tag validation (go-playground/validator) is used for adapter
// settings; programmatic validation with error collection is used where the
// rules depend on each other. Both report failures as CONFIGURATION_ERROR.
//
// # Struct Tag Validation
//
//	type Settings struct {
//	    APIKey    string  `setting:"elevenlabs_api_key" validate:"required"`
//	    Stability float64 `setting:"elevenlabs_stability" validate:"gte=0,lte=1"`
//	}
//	err := validation.Validate(s)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("elevenlabs.base_url", cfg.BaseURL)
//	err := v.Err()
package validation
