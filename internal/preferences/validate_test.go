package preferences

import "testing"

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"25", 25, true},
		{"  30", 30, true},
		{"-5", -5, true},
		{"+7", 7, true},
		{"12abc", 12, true},
		{"2.9", 2, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{" ", 0, false},
		{"9223372036854775807", 9223372036854775807, true},
		{"9223372036854775808", 0, false},
		{"18446744073709551641", 0, false},
		{"99999999999999999999", 0, false},
		{"-18446744073709551641", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseInt(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseInt(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidateMacros(t *testing.T) {
	tests := []struct {
		name    string
		p, c, f string
		want    bool
	}{
		{"Default split", "25", "45", "30", true},
		{"Upper boundary", "25", "45", "35", true},
		{"Lower boundary", "25", "45", "25", true},
		{"Just over", "25", "45", "36", false},
		{"Just under", "25", "45", "24", false},
		{"Far off", "10", "10", "10", false},
		{"Non numeric", "abc", "45", "30", false},
		{"Empty", "", "45", "30", false},
		{"Negative compensates", "-10", "60", "50", true},
		{"Overflowing protein", "18446744073709551641", "45", "30", false},
		{"Huge values cancel exactly", "9223372036854775807", "-9223372036854775807", "100", true},
		{"Huge values near cancel", "9223372036854775807", "-9223372036854775807", "106", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefs := Default().WithProtein(tt.p).WithCarbs(tt.c).WithFat(tt.f)
			if got := ValidateMacros(prefs); got != tt.want {
				t.Errorf("ValidateMacros(%s,%s,%s) = %v, want %v", tt.p, tt.c, tt.f, got, tt.want)
			}
		})
	}
}

func TestValidateMacrosGrid(t *testing.T) {
	for p := 0; p <= 60; p += 3 {
		for c := 0; c <= 60; c += 4 {
			for f := 0; f <= 60; f += 5 {
				prefs := Preferences{Protein: itoa(p), Carbs: itoa(c), Fat: itoa(f)}
				diff := p + c + f - 100
				if diff < 0 {
					diff = -diff
				}
				if got, want := ValidateMacros(prefs), diff <= 5; got != want {
					t.Fatalf("ValidateMacros(%d,%d,%d) = %v, want %v", p, c, f, got, want)
				}
			}
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
