package quote

import (
	"time"
	_ "time/tzdata"
)

// paris is the business's time zone, used for dates shown to people.
var paris = loadParis()

func loadParis() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}
