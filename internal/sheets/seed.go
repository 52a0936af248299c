package sheets

import "time"

// weekdayTitles in the order matching time.Weekday.
var weekdayTitles = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

const weeksSeeded = 52

// SeedWrites builds the header-row writes for a freshly linked
// spreadsheet. Each weekday tab gets a row of column labels followed by
// a year of week dates, starting from the most recent occurrence of
// that weekday. Every date column is paired with a blank notes column.
func SeedWrites(now time.Time) []Write {
	writes := make([]Write, 0, len(weekdayTitles))
	weekday := int(now.Weekday())
	for offset := 0; offset < len(weekdayTitles); offset++ {
		title := weekdayTitles[(weekday+offset)%7]
		row := append([]string{"Sets", "Notes", "Instructions"}, weekDates(now, offset)...)
		writes = append(writes, Write{
			Range:  title + "!1:1",
			Values: [][]string{row},
		})
	}
	return writes
}

func weekDates(now time.Time, offset int) []string {
	cells := make([]string, 0, weeksSeeded*2)
	for week := 0; week < weeksSeeded; week++ {
		d := now.AddDate(0, 0, offset+week*7-7)
		cells = append(cells, d.Format("01/02/2006"), "")
	}
	return cells
}
