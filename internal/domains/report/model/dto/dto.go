package dto

import (
	"slices"

	apptModel "chicstation/internal/domains/appointment/model"
	"chicstation/shared/constant"
	"chicstation/shared/timezone"
)

// DailyReport is one row of the admin dashboard: every service requested on
// a given salon-local date, with the raw appointment count.
type DailyReport struct {
	Date     string   `json:"date"`
	Services []string `json:"services"`
	Count    int      `json:"count"`
}

type DailyBreakdownResponse struct {
	Days      []DailyReport `json:"days"`
	TotalData int           `json:"total_data"`
}

type CountResponse struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Count int    `json:"count"`
}

// GroupByDate buckets appointments by their salon-local calendar date.
// Days come back in ascending date order; each day's service list is
// deduplicated and keeps the order services were first requested in.
func GroupByDate(appts []apptModel.Appointment) []DailyReport {
	byDate := map[string][]string{}
	counts := map[string]int{}

	for _, appt := range appts {
		date := timezone.ToAppTime(appt.DateTime).Format(constant.DateOnlyFormat)

		if !slices.Contains(byDate[date], appt.Service) {
			byDate[date] = append(byDate[date], appt.Service)
		}

		counts[date]++
	}

	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}

	slices.Sort(dates)

	days := make([]DailyReport, len(dates))
	for i, date := range dates {
		days[i] = DailyReport{
			Date:     date,
			Services: byDate[date],
			Count:    counts[date],
		}
	}

	return days
}
