package validators

import "go.mongodb.org/mongo-driver/bson"

var DoctorValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "available_slots", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":              bson.M{"bsonType": "objectId"},
			"user_id":          bson.M{"bsonType": "string", "minLength": 1, "maxLength": 64},
			"qualifications":   bson.M{"bsonType": "string", "maxLength": 500},
			"experience_years": bson.M{"bsonType": []string{"int", "long"}, "minimum": 0, "maximum": 80},
			"fees":             bson.M{"bsonType": []string{"double", "int", "long", "decimal"}, "minimum": 0},
			"available_slots": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "date", "from", "to"},
					"properties": bson.M{
						"id":   bson.M{"bsonType": "string"},
						"date": bson.M{"bsonType": "date"},
						"from": bson.M{"bsonType": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
						"to":   bson.M{"bsonType": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
					},
				},
			},
			"schedule": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "array",
					"items":    bson.M{"bsonType": "string"},
				},
			},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}
