package user

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserDataInvalid = errors.New("user data invalid")
)

type User struct {
	Id            int
	Uid           string
	Username      string
	DisplayName   string
	PhotoUrl      string
	GoogleSubject string
	Settings      Settings
}

// Settings drives presentation-side behavior: the timezone and week first day
// feed the dashboard summary partitions, the currency symbol feeds exports.
type Settings struct {
	Timezone     string
	WeekFirstDay time.Weekday
	Currency     string
}
