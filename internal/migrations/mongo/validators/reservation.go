package validators

import "go.mongodb.org/mongo-driver/bson"

var ReservationValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"_id",
			"name",
			"phone",
			"date",
			"time",
			"guests",
			"created_at",
		},
		"additionalProperties": false,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
				"minimum":  1,
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 6,
			},

			"date": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"time": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"guests": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"special_requests": bson.M{
				"bsonType": []string{"string", "null"},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
