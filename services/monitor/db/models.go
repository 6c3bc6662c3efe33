package db

type PriceRecord struct {
	ID         int64
	FlightDate string
	Miles      int64
	Fees       int64
	RecordedAt int64
}

type MonitorLog struct {
	ID           int64
	Status       string
	DatesChecked int64
	DealsFound   int64
	ErrorMessage string
	CheckedAt    int64
}

type Notification struct {
	ID          int64
	Title       string
	Content     string
	FlightDates string
	Sent        int64
	SentAt      int64
}
