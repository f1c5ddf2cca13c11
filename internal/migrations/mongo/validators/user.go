package validators

import "go.mongodb.org/mongo-driver/bson"

var UserValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{"_id", "username", "password"},
		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "long",
			},
			"username": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},
			"password": bson.M{
				"bsonType": "string",
			},
		},
	},
}
