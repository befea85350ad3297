package internal

// User is a tracked account. Usernames are not unique and are never
// updated after creation.
type User struct {
	ID       string `json:"_id" bson:"_id"`
	Username string `json:"username" bson:"username"`
}

// Exercise is one logged activity. UserID is a soft reference: the user
// must exist when the exercise is created, but deleting the user later
// does not cascade. Username is denormalized from the user at creation.
//
// Duration is stored textually and coerced to an integer whenever a
// response is built. Date holds the normalized calendar-date string
// (weekday month day year, no time of day).
type Exercise struct {
	ID          string `json:"_id" bson:"_id"`
	UserID      string `json:"userId" bson:"userId"`
	Username    string `json:"username" bson:"username"`
	Description string `json:"description" bson:"description"`
	Duration    string `json:"duration" bson:"duration"`
	Date        string `json:"date" bson:"date"`
}
