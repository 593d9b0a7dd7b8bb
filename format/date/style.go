package date

import (
	"fmt"
	"strings"
	"time"
)

// Style represents an enumerated date pattern
type Style struct {
	Name        string
	Pattern     string
	DisplayOnly bool //partial patterns (no year) used for formatting only

	layout      string
	parseLayout string
	millis      bool
	fraction    bool
}

var (
	YearMonth                = newStyle("YYYY_MM", "yyyy-MM", false)
	YearMonthDay             = newStyle("YYYY_MM_DD", "yyyy-MM-dd", false)
	YearMonthDayHourMinute   = newStyle("YYYY_MM_DD_HH_MM", "yyyy-MM-dd HH:mm", false)
	YearMonthDayTime         = newStyle("YYYY_MM_DD_HH_MM_SS", "yyyy-MM-dd HH:mm:ss", false)
	YearMonthDayTimeStamp    = newStyle("YYYY_MM_DD_HH_MM_SS_STAMP", "yyyy-MM-dd HH.mm.ss", false)
	YearMonthEn              = newStyle("YYYY_MM_EN", "yyyy/MM", false)
	YearMonthDayEn           = newStyle("YYYY_MM_DD_EN", "yyyy/MM/dd", false)
	YearMonthDayHourMinuteEn = newStyle("YYYY_MM_DD_HH_MM_EN", "yyyy/MM/dd HH:mm", false)
	YearMonthDayTimeEn       = newStyle("YYYY_MM_DD_HH_MM_SS_EN", "yyyy/MM/dd HH:mm:ss", false)
	CompactYearMonth         = newStyle("YYYY_MM_LINK", "yyyyMM", false)
	CompactDate              = newStyle("YYYY_MM_DD_LINK", "yyyyMMdd", false)
	CompactDateHourMinute    = newStyle("YYYY_MM_DD_HH_MM_LINK", "yyyyMMddHHmm", false)
	CompactDateTime          = newStyle("YYYY_MM_DD_HH_MM_SS_LINK", "yyyyMMddHHmmss", false)
	CompactDateTimeMillis    = newStyle("YYYY_MM_DD_HH_MM_SS_SSS_LINK", "yyyyMMddHHmmssSSS", false)
	YearMonthCn              = newStyle("YYYY_MM_CN", "yyyy年MM月", false)
	YearMonthDayCn           = newStyle("YYYY_MM_DD_CN", "yyyy年MM月dd日", false)
	YearMonthDayHourMinuteCn = newStyle("YYYY_MM_DD_HH_MM_CN", "yyyy年MM月dd日 HH:mm", false)
	YearMonthDayTimeCn       = newStyle("YYYY_MM_DD_HH_MM_SS_CN", "yyyy年MM月dd日 HH:mm:ss", false)
	HourMinute               = newStyle("HH_MM", "HH:mm", true)
	Time                     = newStyle("HH_MM_SS", "HH:mm:ss", true)
	MonthDay                 = newStyle("MM_DD", "MM-dd", true)
	MonthDayHourMinute       = newStyle("MM_DD_HH_MM", "MM-dd HH:mm", true)
	MonthDayTime             = newStyle("MM_DD_HH_MM_SS", "MM-dd HH:mm:ss", true)
	MonthDayEn               = newStyle("MM_DD_EN", "MM/dd", true)
	MonthDayHourMinuteEn     = newStyle("MM_DD_HH_MM_EN", "MM/dd HH:mm", true)
	MonthDayTimeEn           = newStyle("MM_DD_HH_MM_SS_EN", "MM/dd HH:mm:ss", true)
	MonthDayCn               = newStyle("MM_DD_CN", "MM月dd日", true)
	MonthDayHourMinuteCn     = newStyle("MM_DD_HH_MM_CN", "MM月dd日 HH:mm", true)
	MonthDayTimeCn           = newStyle("MM_DD_HH_MM_SS_CN", "MM月dd日 HH:mm:ss", true)
)

// Styles lists all styles in detection order
var Styles = []*Style{
	YearMonth, YearMonthDay, YearMonthDayHourMinute, YearMonthDayTime, YearMonthDayTimeStamp,
	YearMonthEn, YearMonthDayEn, YearMonthDayHourMinuteEn, YearMonthDayTimeEn,
	CompactYearMonth, CompactDate, CompactDateHourMinute, CompactDateTime, CompactDateTimeMillis,
	YearMonthCn, YearMonthDayCn, YearMonthDayHourMinuteCn, YearMonthDayTimeCn,
	HourMinute, Time,
	MonthDay, MonthDayHourMinute, MonthDayTime,
	MonthDayEn, MonthDayHourMinuteEn, MonthDayTimeEn,
	MonthDayCn, MonthDayHourMinuteCn, MonthDayTimeCn,
}

type token struct {
	letter  rune
	count   int
	literal string
}

const compactMillis = "ssSSS"

// Layout converts yyyy-MM-dd style pattern into go time layout used for formatting
func Layout(pattern string) string {
	return layout(tokenize(pattern), false)
}

// tokenize splits pattern into letter runs and literals, quoted text ('T', '') is literal
func tokenize(pattern string) []*token {
	var tokens []*token
	appendLiteral := func(literal string) {
		if n := len(tokens); n > 0 && tokens[n-1].letter == 0 {
			tokens[n-1].literal += literal
			return
		}
		tokens = append(tokens, &token{literal: literal})
	}
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				appendLiteral("'")
				i += 2
				continue
			}
			end := i + 1
			for end < len(runes) && runes[end] != '\'' {
				end++
			}
			appendLiteral(string(runes[i+1 : end]))
			i = end + 1
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			count := 1
			for i+count < len(runes) && runes[i+count] == r {
				count++
			}
			tokens = append(tokens, &token{letter: r, count: count})
			i += count
		default:
			appendLiteral(string(r))
			i++
		}
	}
	return tokens
}

// layout builds go layout; for parsing, numeric fields not abutting other fields accept one or two digits
func layout(tokens []*token, parsing bool) string {
	builder := strings.Builder{}
	for i, item := range tokens {
		if item.letter == 0 {
			builder.WriteString(item.literal)
			continue
		}
		abutting := (i > 0 && tokens[i-1].letter != 0) || (i+1 < len(tokens) && tokens[i+1].letter != 0)
		variable := item.count == 1 || (parsing && !abutting)
		builder.WriteString(item.layout(variable))
	}
	return builder.String()
}

func (t *token) layout(variable bool) string {
	pick := func(variableLayout, fixedLayout string) string {
		if variable {
			return variableLayout
		}
		return fixedLayout
	}
	switch t.letter {
	case 'y':
		if t.count == 2 {
			return "06"
		}
		return "2006"
	case 'M':
		switch {
		case t.count >= 4:
			return "January"
		case t.count == 3:
			return "Jan"
		}
		return pick("1", "01")
	case 'd':
		return pick("2", "02")
	case 'H':
		return "15"
	case 'h':
		return pick("3", "03")
	case 'm':
		return pick("4", "04")
	case 's':
		return pick("5", "05")
	case 'S':
		return strings.Repeat("0", t.count)
	case 'a':
		return "PM"
	case 'E':
		if t.count >= 4 {
			return "Monday"
		}
		return "Mon"
	case 'z':
		return "MST"
	case 'Z':
		return "-0700"
	case 'X':
		return "Z07:00"
	}
	return strings.Repeat(string(t.letter), t.count)
}

func newStyle(name, pattern string, displayOnly bool) *Style {
	ret := &Style{Name: name, Pattern: pattern, DisplayOnly: displayOnly}
	if strings.HasSuffix(pattern, compactMillis) {
		ret.millis = true
		pattern = pattern[:len(pattern)-3]
	}
	tokens := tokenize(pattern)
	ret.layout = layout(tokens, false)
	ret.parseLayout = layout(tokens, true)
	for _, item := range tokens {
		if item.letter == 'S' {
			ret.fraction = true
		}
	}
	return ret
}

// Lookup returns a style for supplied name or pattern
func Lookup(nameOrPattern string) *Style {
	for _, style := range Styles {
		if style.Name == nameOrPattern || style.Pattern == nameOrPattern {
			return style
		}
	}
	return nil
}

// NewStyle creates an ad hoc style for supplied pattern
func NewStyle(pattern string) *Style {
	if style := Lookup(pattern); style != nil {
		return style
	}
	return newStyle(pattern, pattern, false)
}

// String returns style pattern
func (s *Style) String() string {
	return s.Pattern
}

// Layout returns go time layout
func (s *Style) Layout() string {
	return s.layout
}

// Parse strictly parses value, the whole input has to match the pattern
func (s *Style) Parse(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if !s.millis {
		return s.parse(value, loc)
	}
	if len(value) < 3 {
		return time.Time{}, fmt.Errorf("invalid date %q for pattern %v", value, s.Pattern)
	}
	fraction := value[len(value)-3:]
	ms := 0
	for _, r := range fraction {
		if r < '0' || r > '9' {
			return time.Time{}, fmt.Errorf("invalid milliseconds %q for pattern %v", fraction, s.Pattern)
		}
		ms = ms*10 + int(r-'0')
	}
	ts, err := s.parse(value[:len(value)-3], loc)
	if err != nil {
		return ts, err
	}
	return ts.Add(time.Duration(ms) * time.Millisecond), nil
}

func (s *Style) parse(value string, loc *time.Location) (time.Time, error) {
	ts, err := time.ParseInLocation(s.parseLayout, value, loc)
	if err != nil {
		return ts, err
	}
	//go accepts a fractional second after seconds even when layout has none
	if !s.fraction && ts.Nanosecond() != 0 {
		return time.Time{}, fmt.Errorf("invalid date %q for pattern %v: unexpected fractional seconds", value, s.Pattern)
	}
	return ts, nil
}

// Format formats supplied time with the style pattern
func (s *Style) Format(t time.Time) string {
	if !s.millis {
		return t.Format(s.layout)
	}
	return t.Format(s.layout) + fmt.Sprintf("%03d", t.Nanosecond()/int(time.Millisecond))
}
