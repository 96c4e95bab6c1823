// Package mineskin implements the client for the MineSkin generation API:
// skin generation from a Minecraft account UUID or an image URL, and
// username validation.
package mineskin

// Kind selects which source the generation request is built from.
type Kind string

const (
	KindUser Kind = "user" // generate from an account UUID
	KindURL  Kind = "url"  // generate from an image URL
)

// Variant is the skin model. VariantAuto lets the API detect it and is
// never sent downstream.
type Variant string

const (
	VariantAuto    Variant = "auto"
	VariantClassic Variant = "classic"
	VariantSlim    Variant = "slim"
)

// Job is one validated generation request, queued for processing. Created
// once per accepted command interaction and consumed exactly once.
type Job struct {
	// Correlation back to the originating interaction.
	Token         string
	InteractionID string

	Kind    Kind
	Value   string // trimmed UUID or normalized absolute URL, per Kind
	Variant Variant
	Name    string // optional, at most 20 characters
}

// GenerateResult is the outcome of a Job: exactly one of Skin or Failure
// is set. The correlation fields carry forward from the Job.
type GenerateResult struct {
	Token         string
	InteractionID string
	Kind          Kind

	Skin    *GeneratedSkin
	Failure *APIError
}

// Errored reports whether the result carries an upstream error.
func (r *GenerateResult) Errored() bool { return r.Failure != nil }

// GeneratedSkin is the success payload of the generate endpoint.
type GeneratedSkin struct {
	ID        int64    `json:"id"`
	IDStr     string   `json:"idStr"`
	Name      string   `json:"name,omitempty"`
	Variant   string   `json:"variant"`
	Data      SkinData `json:"data"`
	Timestamp int64    `json:"timestamp"` // unix seconds
	Duration  int64    `json:"duration"`  // generation time in ms
}

// SkinData holds the generated texture and its owning account.
type SkinData struct {
	UUID    string  `json:"uuid"`
	Texture Texture `json:"texture"`
}

// Texture is the signed skin texture reference.
type Texture struct {
	Value     string `json:"value"`
	Signature string `json:"signature"`
	URL       string `json:"url"`
}

// APIError is the structured error payload the API returns on failure.
type APIError struct {
	Message string `json:"error"`
	Code    string `json:"errorCode,omitempty"`
}

// NameValidation is the response of the username validation endpoint.
type NameValidation struct {
	Valid bool   `json:"valid"`
	UUID  string `json:"uuid,omitempty"`
}
