package mojang

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is a fully decoded Minecraft profile, including the texture
// information carried in the session server's base64 payload.
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Timestamp int64     `json:"timestamp"`
	Name      string    `json:"name"`
	Legacy    bool      `json:"legacy"`

	// SkinVariant is "classic" or "slim". It is never empty; profiles
	// without explicit skin metadata default to "classic".
	SkinVariant string `json:"skin_variant"`

	// SkinURL and CapeURL are empty when the profile has no custom skin
	// or cape.
	SkinURL string `json:"skin_url,omitempty"`
	CapeURL string `json:"cape_url,omitempty"`
}

// uuidResponse is the wire form of a single name lookup result.
// The id field is a pointer so that a missing field can be told apart
// from an empty one.
type uuidResponse struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

// batchEntry is one element of the bulk name lookup response.
type batchEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// sessionProfile is the raw profile document returned by the session
// server. The texture payload lives base64-encoded in properties[0].
type sessionProfile struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Properties []profileProperty `json:"properties"`
}

type profileProperty struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// texturePayload is the decoded form of the base64 texture blob.
// Required fields are pointers or checked for emptiness so that absent
// fields can be rejected.
type texturePayload struct {
	Timestamp   *int64         `json:"timestamp"`
	ProfileID   string         `json:"profileId"`
	ProfileName string         `json:"profileName"`
	Legacy      bool           `json:"legacy"`
	Textures    textureSection `json:"textures"`
}

type textureSection struct {
	Skin *skinTexture `json:"SKIN"`
	Cape *capeTexture `json:"CAPE"`
}

type skinTexture struct {
	URL      string        `json:"url"`
	Metadata *skinMetadata `json:"metadata"`
}

type skinMetadata struct {
	Model string `json:"model"`
}

type capeTexture struct {
	URL string `json:"url"`
}

// cacheEntry is a cached name lookup result.
type cacheEntry struct {
	ID        uuid.UUID
	Timestamp time.Time
	NotFound  bool // true if the username does not exist
}
