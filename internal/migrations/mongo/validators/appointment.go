package validators

import "go.mongodb.org/mongo-driver/bson"

var AppointmentValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"patient_id",
			"doctor_id",
			"date",
			"time",
			"token_number",
			"token_date",
			"status",
			"version",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"patient_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"doctor_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"token_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"time": bson.M{
				"bsonType": "string",
				"pattern":  `^([01]\d|2[0-3]):[0-5]\d$`,
			},

			"duration_minutes": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
				"maximum":  1440,
			},

			"token_number": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"status": bson.M{
				"enum": []string{"pending", "confirmed", "cancelled", "completed"},
			},

			"reschedule_requests": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "requested_by", "date", "time", "status"},
					"properties": bson.M{
						"id":           bson.M{"bsonType": "string"},
						"requested_by": bson.M{"bsonType": "string"},
						"date":         bson.M{"bsonType": "string"},
						"time":         bson.M{"bsonType": "string"},
						"status": bson.M{
							"enum": []string{"pending", "accepted", "rejected"},
						},
						"created_at":  bson.M{"bsonType": "date"},
						"resolved_at": bson.M{"bsonType": "date"},
					},
				},
			},

			"payment_mode": bson.M{
				"enum": []string{"cash", "stripe", "razorpay", "online"},
			},

			"payment_status": bson.M{
				"enum": []string{"pending", "paid", "failed"},
			},

			"amount": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"version": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  0,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
