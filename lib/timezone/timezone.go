package timezone

import "time"

var Location *time.Location

func init() {
	var err error
	Location, err = time.LoadLocation("Asia/Taipei")
	if err != nil {
		panic(err)
	}
}

// force timezone to be in Taipei because the people reading the run
// log and deal notifications live there, while the servers this runs
// on tend to end up in us-west or us-east
func Now() time.Time {
	return time.Now().In(Location)
}
