package calendar

import (
	"sort"
	"time"

	"github.com/payram/igaming-events-api/internal/models"
)

const (
	DaysPerWeek  = 7
	WeeksPerGrid = 6

	// VisibleRowLimit is how many rows a collapsed week shows.
	VisibleRowLimit = 2

	WeekHeaderHeight = 32
	WeekRowHeight    = 24
	MoreLinkHeight   = 20
	WeekBaseHeight   = 96
)

// DayCell is one square of the month grid.
type DayCell struct {
	Date           Date `json:"date"`
	Day            int  `json:"day"`
	InCurrentMonth bool `json:"inCurrentMonth"`
	IsToday        bool `json:"isToday"`
	EventCount     int  `json:"eventCount"`
}

// WeekSegment is the part of one event that falls inside one displayed week.
type WeekSegment struct {
	Event          models.Event `json:"event"`
	Start          Date         `json:"start"`
	End            Date         `json:"end"`
	StartCol       int          `json:"startCol"`
	EndCol         int          `json:"endCol"`
	TotalDuration  int          `json:"totalDuration"`
	IsStartOfEvent bool         `json:"isStartOfEvent"`
	IsEndOfEvent   bool         `json:"isEndOfEvent"`
	Row            int          `json:"row"`
	Hidden         bool         `json:"hidden"`
}

// WeekLayout is one row of the month grid with its packed segments.
type WeekLayout struct {
	Index       int           `json:"index"`
	Start       Date          `json:"start"`
	End         Date          `json:"end"`
	Days        []DayCell     `json:"days"`
	Segments    []WeekSegment `json:"segments"`
	RowCount    int           `json:"rowCount"`
	VisibleRows int           `json:"visibleRows"`
	HiddenCount int           `json:"hiddenCount"`
	Expanded    bool          `json:"expanded"`
	Height      int           `json:"height"`
}

// MonthLayout is the full 6x7 grid for one displayed month.
type MonthLayout struct {
	Year  int          `json:"year"`
	Month int          `json:"month"`
	Label string       `json:"label"`
	Prev  string       `json:"prev"`
	Next  string       `json:"next"`
	Days  []DayCell    `json:"days"`
	Weeks []WeekLayout `json:"weeks"`
}

// Options carries the per-viewer inputs of a layout pass.
type Options struct {
	// Today is highlighted when it falls in the displayed month. Zero disables it.
	Today time.Time
	// Expanded lists week indexes whose hidden rows are shown.
	Expanded map[int]bool
}

// BuildMonth lays out events over the month containing current. Events with
// dates that do not parse are left out.
func BuildMonth(events []models.Event, current time.Time, opts Options) MonthLayout {
	loc := current.Location()
	first := time.Date(current.Year(), current.Month(), 1, 0, 0, 0, 0, loc)
	gridStart := dayNumber(MondayOnOrBefore(first))

	spans := make([]span, 0, len(events))
	for _, e := range events {
		if s, ok := spanOf(e); ok {
			spans = append(spans, s)
		}
	}

	layout := MonthLayout{
		Year:  first.Year(),
		Month: int(first.Month()),
		Label: MonthYear(first),
		Prev:  first.AddDate(0, -1, 0).Format(MonthLayoutKey),
		Next:  first.AddDate(0, 1, 0).Format(MonthLayoutKey),
		Days:  make([]DayCell, 0, DaysPerWeek*WeeksPerGrid),
		Weeks: make([]WeekLayout, 0, WeeksPerGrid),
	}

	today := -1
	if !opts.Today.IsZero() {
		today = dayNumber(opts.Today)
	}

	for i := 0; i < DaysPerWeek*WeeksPerGrid; i++ {
		n := gridStart + i
		date := fromDayNumber(n, loc)
		cell := DayCell{
			Date:           Date{date},
			Day:            date.Day(),
			InCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
		}
		cell.IsToday = cell.InCurrentMonth && n == today
		for _, s := range spans {
			if s.start <= n && n <= s.end {
				cell.EventCount++
			}
		}
		layout.Days = append(layout.Days, cell)
	}

	for w := 0; w < WeeksPerGrid; w++ {
		weekStart := gridStart + w*DaysPerWeek
		week := buildWeek(w, weekStart, spans, loc, opts.Expanded[w])
		week.Days = layout.Days[w*DaysPerWeek : (w+1)*DaysPerWeek]
		layout.Weeks = append(layout.Weeks, week)
	}

	return layout
}

// MonthLayoutKey is the YYYY-MM form used to address a month.
const MonthLayoutKey = "2006-01"

// ParseMonth parses YYYY-MM into the first of that month in loc.
func ParseMonth(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(MonthLayoutKey, raw, loc)
}

func buildWeek(index, weekStart int, spans []span, loc *time.Location, expanded bool) WeekLayout {
	weekEnd := weekStart + DaysPerWeek - 1
	week := WeekLayout{
		Index:    index,
		Start:    Date{fromDayNumber(weekStart, loc)},
		End:      Date{fromDayNumber(weekEnd, loc)},
		Expanded: expanded,
	}

	type clipped struct {
		span     span
		start    int
		end      int
		startCol int
		endCol   int
		duration int
	}
	var segs []clipped
	for _, s := range spans {
		if s.start > weekEnd || s.end < weekStart {
			continue
		}
		start := maxInt(s.start, weekStart)
		end := minInt(s.end, weekEnd)
		if end < start {
			continue
		}
		segs = append(segs, clipped{
			span:     s,
			start:    start,
			end:      end,
			startCol: clampCol(start - weekStart + 1),
			endCol:   clampCol(end - weekStart + 1),
			duration: maxInt(1, s.end-s.start+1),
		})
	}

	sort.SliceStable(segs, func(i, j int) bool {
		if segs[i].duration != segs[j].duration {
			return segs[i].duration > segs[j].duration
		}
		if segs[i].start != segs[j].start {
			return segs[i].start < segs[j].start
		}
		return segs[i].span.event.EventName < segs[j].span.event.EventName
	})

	var rows [][]colRange
	week.Segments = make([]WeekSegment, 0, len(segs))
	for _, c := range segs {
		r := placeInRow(&rows, colRange{c.startCol, c.endCol})
		seg := WeekSegment{
			Event:          c.span.event,
			Start:          Date{fromDayNumber(c.start, loc)},
			End:            Date{fromDayNumber(c.end, loc)},
			StartCol:       c.startCol,
			EndCol:         c.endCol,
			TotalDuration:  c.duration,
			IsStartOfEvent: c.start == c.span.start,
			IsEndOfEvent:   c.end == c.span.end,
			Row:            r,
		}
		if r >= VisibleRowLimit && !expanded {
			seg.Hidden = true
			week.HiddenCount++
		}
		week.Segments = append(week.Segments, seg)
	}

	week.RowCount = len(rows)
	week.VisibleRows = week.RowCount
	if !expanded && week.VisibleRows > VisibleRowLimit {
		week.VisibleRows = VisibleRowLimit
	}
	week.Height = WeekHeight(week.VisibleRows, week.HiddenCount)
	return week
}

// WeekHeight derives the rendered height of a week row.
func WeekHeight(visibleRows, hidden int) int {
	if visibleRows == 0 && hidden == 0 {
		return WeekBaseHeight
	}
	h := WeekHeaderHeight + visibleRows*WeekRowHeight
	if hidden > 0 {
		h += MoreLinkHeight
	}
	return maxInt(h, WeekBaseHeight)
}

type colRange struct {
	start int
	end   int
}

func (c colRange) overlaps(o colRange) bool {
	return c.start <= o.end && o.start <= c.end
}

// placeInRow puts c into the first row it fits, opening a row when none does.
func placeInRow(rows *[][]colRange, c colRange) int {
	for i, row := range *rows {
		fits := true
		for _, taken := range row {
			if taken.overlaps(c) {
				fits = false
				break
			}
		}
		if fits {
			(*rows)[i] = append(row, c)
			return i
		}
	}
	*rows = append(*rows, []colRange{c})
	return len(*rows) - 1
}

func clampCol(col int) int {
	if col < 1 {
		return 1
	}
	if col > DaysPerWeek {
		return DaysPerWeek
	}
	return col
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
