package catalog

// JSON schemas for the catalog data files. Validation happens before
// decoding so malformed files are rejected with a schema path instead of a
// partial unmarshal.

const usersSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "age", "city"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0},
			"city": {"type": "string"},
			"hobbies": {"type": "array", "items": {"type": "string"}},
			"active": {"type": "boolean"},
			"tier": {"type": "string"},
			"points": {"type": "integer", "minimum": 0}
		}
	}
}`

const productsSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "category"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"name": {"type": "string", "minLength": 1},
			"category": {"type": "string", "minLength": 1},
			"rating": {"type": "number", "minimum": 0, "maximum": 5},
			"stock": {"type": "integer", "minimum": 0},
			"featured": {"type": "boolean"},
			"tags": {"type": "array", "items": {"type": "string"}},
			"price": {"type": "number", "minimum": 0}
		}
	}
}`

const ordersSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "user_id", "items"],
		"properties": {
			"id": {"type": "integer", "minimum": 1},
			"user_id": {"type": "integer", "minimum": 1},
			"date": {"type": "string", "format": "date-time"},
			"items": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["product_id", "quantity"],
					"properties": {
						"product_id": {"type": "integer", "minimum": 1},
						"quantity": {"type": "integer", "minimum": 1}
					}
				}
			}
		}
	}
}`
