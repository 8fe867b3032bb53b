package security

import "testing"

func TestIsSensitiveContext(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"auth token generation", true},
		{"session id", true},
		{"JWT signing", true},
		{"password reset flow", true},
		{"database primary key", false},
		{"log correlation", false},
		{"", false},
	}
	for _, c := range cases {
		if got := IsSensitiveContext(c.in); got != c.want {
			t.Fatalf("IsSensitiveContext(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestRate(t *testing.T) {
	cases := []struct {
		in   string
		want Rating
	}{
		{"oauth callback", RatingHigh},
		{"session token", RatingHigh},
		{"user profile", RatingMedium},
		{"admin panel", RatingMedium},
		{"database record", RatingLow},
		{"trace correlation", RatingLow},
		{"widget labeling", RatingUnknown},
	}
	for _, c := range cases {
		if got := Rate(c.in); got != c.want {
			t.Fatalf("Rate(%q): want %v, got %v", c.in, c.want, got)
		}
	}
}

func TestAssess(t *testing.T) {
	a := Assess("api_key storage")
	if !a.Sensitive || a.Rating != RatingHigh {
		t.Fatalf("unexpected assessment: %+v", a)
	}
	b := Assess("log shipping")
	if b.Sensitive || b.Rating != RatingLow {
		t.Fatalf("unexpected assessment: %+v", b)
	}
}

func TestAdviceComplete(t *testing.T) {
	adv := GetAdvice()
	if len(adv.SafeUseCases) == 0 || len(adv.UnsafeUseCases) == 0 || len(adv.BestPractices) == 0 {
		t.Fatalf("advice lists must not be empty")
	}
	if adv.Vulnerability == "" || adv.Warning == "" {
		t.Fatalf("advice text must not be empty")
	}
}
