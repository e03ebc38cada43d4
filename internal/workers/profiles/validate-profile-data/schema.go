// internal/workers/profiles/validate-profile-data/schema.go
package validateprofiledata

// profileSchema describes an onboarded profile as the matching workers
// expect it. Social links are optional but must be well-formed URIs
// when present.
const profileSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["fullName", "role"],
	"properties": {
		"id": {
			"type": "string"
		},
		"fullName": {
			"type": "string",
			"minLength": 1,
			"maxLength": 120
		},
		"university": {
			"type": "string",
			"maxLength": 200
		},
		"bio": {
			"type": "string",
			"maxLength": 2000
		},
		"skills": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"maxItems": 50
		},
		"interests": {
			"type": "array",
			"items": {"type": "string", "minLength": 1},
			"maxItems": 50
		},
		"role": {
			"type": "string",
			"enum": [
				"Looking for a co-founder",
				"Looking for team members",
				"Ready to join as co-founder"
			]
		},
		"linkedinUrl": {
			"type": "string",
			"format": "uri"
		},
		"twitterUrl": {
			"type": "string",
			"format": "uri"
		},
		"websiteUrl": {
			"type": "string",
			"format": "uri"
		},
		"avatarUrl": {
			"type": "string",
			"format": "uri"
		},
		"isOnboarded": {
			"type": "boolean"
		}
	}
}`
