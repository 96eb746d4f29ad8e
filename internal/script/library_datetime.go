package script

import "time"

// file library_datetime.go implements the Datetime standard-library group:
// day, hour, minute, month, second, year, new, now, today, ISOFormat.

func init() {
	registerBuiltin("datetimeDay", false, biDatetimeField(time.Time.Day))
	registerBuiltin("datetimeHour", false, biDatetimeField(time.Time.Hour))
	registerBuiltin("datetimeMinute", false, biDatetimeField(time.Time.Minute))
	registerBuiltin("datetimeMonth", false, biDatetimeMonth)
	registerBuiltin("datetimeSecond", false, biDatetimeField(time.Time.Second))
	registerBuiltin("datetimeYear", false, biDatetimeYear)
	registerBuiltin("datetimeNew", false, biDatetimeNew)
	registerBuiltin("datetimeNow", false, biDatetimeNow)
	registerBuiltin("datetimeToday", false, biDatetimeToday)
	registerBuiltin("datetimeISOFormat", false, biDatetimeISOFormat)
}

func dtArg(args []Value, i int) (time.Time, bool) {
	v := arg(args, i)
	if v.Type() != Datetime {
		return time.Time{}, false
	}
	return v.Time(), true
}

// biDatetimeField adapts a zero-argument time.Time accessor (Day, Hour,
// Minute, Second) into a Callable.
func biDatetimeField(fn func(time.Time) int) Callable {
	return func(args []Value, host HostRef) (Value, error) {
		t, ok := dtArg(args, 0)
		if !ok {
			return NewNull(), nil
		}
		return NewNumber(float64(fn(t))), nil
	}
}

func biDatetimeMonth(args []Value, host HostRef) (Value, error) {
	t, ok := dtArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewNumber(float64(t.Month())), nil
}

func biDatetimeYear(args []Value, host HostRef) (Value, error) {
	t, ok := dtArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	return NewNumber(float64(t.Year())), nil
}

func biDatetimeNew(args []Value, host HostRef) (Value, error) {
	y, ok := numArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	m, ok := numArg(args, 1)
	if !ok {
		return NewNull(), nil
	}
	d, ok := numArg(args, 2)
	if !ok {
		return NewNull(), nil
	}
	h, ok := numArgDefault(args, 3, 0)
	if !ok {
		return NewNull(), nil
	}
	min, ok := numArgDefault(args, 4, 0)
	if !ok {
		return NewNull(), nil
	}
	sec, ok := numArgDefault(args, 5, 0)
	if !ok {
		return NewNull(), nil
	}
	ms, ok := numArgDefault(args, 6, 0)
	if !ok {
		return NewNull(), nil
	}
	t := time.Date(int(y), time.Month(int(m)), int(d), int(h), int(min), int(sec), int(ms)*1e6, time.Local)
	return NewDatetime(t), nil
}

func biDatetimeNow(args []Value, host HostRef) (Value, error) {
	return NewDatetime(time.Now()), nil
}

func biDatetimeToday(args []Value, host HostRef) (Value, error) {
	now := time.Now()
	y, m, d := now.Date()
	return NewDatetime(time.Date(y, m, d, 0, 0, 0, 0, time.Local)), nil
}

func biDatetimeISOFormat(args []Value, host HostRef) (Value, error) {
	t, ok := dtArg(args, 0)
	if !ok {
		return NewNull(), nil
	}
	dateOnly := boolArgDefault(args, 1, false)
	if dateOnly {
		return NewString(t.Format("2006-01-02")), nil
	}
	return NewString(t.Format(time.RFC3339Nano)), nil
}
