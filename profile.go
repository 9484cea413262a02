package mojang

import (
	"encoding/base64"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// decodeProfile decodes the base64 texture blob carried in a session
// server profile document into a UserProfile. Any structural problem
// with the document is reported as ErrMalformedResponse.
func decodeProfile(doc *sessionProfile) (*UserProfile, error) {
	if len(doc.Properties) == 0 {
		return nil, malformedf("cannot decode profile textures: no properties")
	}

	raw, err := decodeBase64(doc.Properties[0].Value)
	if err != nil {
		return nil, malformedf("cannot decode profile textures: %v", err)
	}

	var payload texturePayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, malformedf("cannot decode profile textures: %v", err)
	}

	if payload.ProfileID == "" {
		return nil, malformedf("texture payload missing profileId field")
	}
	id, err := uuid.Parse(payload.ProfileID)
	if err != nil {
		return nil, malformedf("invalid profileId in texture payload: %v", err)
	}
	if payload.Timestamp == nil {
		return nil, malformedf("texture payload missing timestamp field")
	}
	if payload.ProfileName == "" {
		return nil, malformedf("texture payload missing profileName field")
	}

	profile := &UserProfile{
		ID:          id,
		Timestamp:   *payload.Timestamp,
		Name:        payload.ProfileName,
		Legacy:      payload.Legacy,
		SkinVariant: "classic",
	}

	if skin := payload.Textures.Skin; skin != nil {
		profile.SkinURL = skin.URL
		if skin.Metadata != nil && skin.Metadata.Model != "" {
			profile.SkinVariant = skin.Metadata.Model
		}
	}
	if cape := payload.Textures.Cape; cape != nil {
		profile.CapeURL = cape.URL
	}

	return profile, nil
}

// decodeBase64 decodes standard base64, tolerating stripped padding.
func decodeBase64(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}

	if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
		return raw, nil
	}

	return nil, err
}
