package validators

import "go.mongodb.org/mongo-driver/bson"

var NotificationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType":             "object",
		"required":             []string{"user_id", "title", "read", "created_at"},
		"additionalProperties": true,
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "objectId"},
			"event_id":   bson.M{"bsonType": "string"},
			"user_id":    bson.M{"bsonType": "string", "minLength": 1},
			"title":      bson.M{"bsonType": "string", "minLength": 1},
			"body":       bson.M{"bsonType": "string"},
			"data":       bson.M{"bsonType": "object"},
			"read":       bson.M{"bsonType": "bool"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var SlotLockValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "owner", "expires_at"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"owner":      bson.M{"bsonType": "string"},
			"expires_at": bson.M{"bsonType": "date"},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

var RetiredTokensValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "highest"},
		"properties": bson.M{
			"_id":        bson.M{"bsonType": "string"},
			"doctor_id":  bson.M{"bsonType": "string"},
			"token_date": bson.M{"bsonType": "string"},
			"highest":    bson.M{"bsonType": []string{"int", "long"}, "minimum": 1},
		},
	},
}
