package store

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Record keys in the records table.
const (
	KeyProfile  = "profile"
	KeySettings = "settings"
	KeyProgress = "progress"
	KeySession  = "session"
	KeyMastery  = "mastery"
)

var levelSchema = `{"type": "integer", "minimum": 1, "maximum": 5}`

// recordSchemas holds the JSON Schema of every record key.
var recordSchemas = map[string]string{
	KeyProfile: `{
		"type": "object",
		"required": ["nickname"],
		"properties": {
			"nickname": {"type": "string"}
		}
	}`,

	KeySettings: `{
		"type": "object",
		"required": ["theme", "colors", "avatar", "soundOn", "childName", "defaultMissionSize", "autoAdvanceSpeed"],
		"properties": {
			"theme": {"type": "string", "minLength": 1},
			"colors": {
				"type": "object",
				"required": ["primary", "secondary", "accent"],
				"properties": {
					"primary": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
					"secondary": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"},
					"accent": {"type": "string", "pattern": "^#[0-9A-Fa-f]{6}$"}
				}
			},
			"avatar": {"type": "string"},
			"soundOn": {"type": "boolean"},
			"childName": {"type": "string", "maxLength": 20},
			"defaultMissionSize": {"type": "integer", "minimum": 1},
			"autoAdvanceSpeed": {"type": "integer", "minimum": 1, "maximum": 30}
		}
	}`,

	KeyProgress: `{
		"type": "object",
		"required": ["levels", "totalGems", "createdAt"],
		"properties": {
			"levels": {
				"type": "object",
				"required": ["numeracy", "reading", "conventions", "writing"],
				"properties": {
					"numeracy": ` + levelSchema + `,
					"reading": ` + levelSchema + `,
					"conventions": ` + levelSchema + `,
					"writing": ` + levelSchema + `
				}
			},
			"totalGems": {"type": "integer", "minimum": 0},
			"createdAt": {"type": "string", "minLength": 1}
		}
	}`,

	KeySession: `{
		"type": "object",
		"required": ["sessionId", "module", "missionSize", "level", "questionIds", "qIndex", "correctCount", "gemCount", "bankVersion", "startedAt", "elapsedMs"],
		"properties": {
			"sessionId": {"type": "string", "minLength": 1},
			"module": {"enum": ["numeracy", "reading", "conventions", "writing"]},
			"missionSize": {"type": "integer", "minimum": 1},
			"level": ` + levelSchema + `,
			"questionIds": {"type": "array", "minItems": 1, "items": {"type": "string", "minLength": 1}},
			"qIndex": {"type": "integer", "minimum": 0},
			"correctCount": {"type": "integer", "minimum": 0},
			"gemCount": {"type": "integer", "minimum": 0},
			"bankVersion": {"type": "string"},
			"startedAt": {"type": "string", "minLength": 1},
			"elapsedMs": {"type": "integer", "minimum": 0},
			"outcome": {"enum": ["", "retry", "correct", "incorrect"]},
			"hintShown": {"type": "boolean"}
		}
	}`,

	KeyMastery: `{
		"type": "object",
		"required": ["subskills"],
		"properties": {
			"subskills": {
				"type": "object",
				"additionalProperties": {
					"type": "object",
					"required": ["status", "streakCorrect", "totalAttempts", "correctAttempts", "difficulty", "scheduledReviewQueue"],
					"properties": {
						"status": {"enum": ["unseen", "learning", "mastered"]},
						"streakCorrect": {"type": "integer", "minimum": 0},
						"totalAttempts": {"type": "integer", "minimum": 0},
						"correctAttempts": {"type": "integer", "minimum": 0},
						"difficulty": ` + levelSchema + `,
						"scheduledReviewQueue": {"type": "array", "uniqueItems": true, "items": {"type": "string"}},
						"lastSeen": {"type": ["string", "null"]}
					}
				}
			}
		}
	}`,
}

// schemaCache caches compiled record schemas by key.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// validateRecord checks raw JSON against the schema registered for key.
func validateRecord(key string, raw []byte) error {
	compiled, err := compiledSchema(key)
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("%w: %s: invalid JSON: %v", ErrCorruptRecord, key, err)
	}
	if err := compiled.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return nil
}

// compiledSchema returns a cached compiled schema or compiles and caches it.
func compiledSchema(key string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(key); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := recordSchemas[key]
	if !ok {
		return nil, fmt.Errorf("no schema for record %q", key)
	}
	parsed, err := jsonschema.UnmarshalJSON(strings.NewReader(def))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", key, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://ziggy/%s.json", key)
	if err := c.AddResource(url, parsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", key, err)
	}

	schemaCache.Store(key, compiled)
	return compiled, nil
}
