package domain

import "testing"

func TestNextStatusFollowsPickupSequence(t *testing.T) {
	cases := []struct {
		from FoodStatus
		want FoodStatus
		ok   bool
	}{
		{StatusAccepted, StatusOnTheWay, true},
		{StatusOnTheWay, StatusPickedUp, true},
		{StatusPickedUp, StatusDelivered, true},
		{StatusDelivered, StatusDelivered, false},
		{StatusAvailable, StatusAvailable, false},
		{StatusNotified, StatusNotified, false},
	}

	for _, tc := range cases {
		got, ok := NextStatus(tc.from)
		if got != tc.want || ok != tc.ok {
			t.Errorf("NextStatus(%q) = %q, %v; want %q, %v", tc.from, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsTerminal(t *testing.T) {
	for _, s := range AllStatuses {
		want := s == StatusDelivered
		if IsTerminal(s) != want {
			t.Errorf("IsTerminal(%q) = %v; want %v", s, IsTerminal(s), want)
		}
	}
}

func TestIsPrePickup(t *testing.T) {
	for _, s := range AllStatuses {
		want := s == StatusAvailable || s == StatusNotified
		if IsPrePickup(s) != want {
			t.Errorf("IsPrePickup(%q) = %v; want %v", s, IsPrePickup(s), want)
		}
		if InPickup(s) == want {
			t.Errorf("InPickup(%q) and IsPrePickup(%q) should not agree", s, s)
		}
	}
}

func TestParseFoodStatus(t *testing.T) {
	for _, s := range AllStatuses {
		got, err := ParseFoodStatus(string(s))
		if err != nil || got != s {
			t.Errorf("ParseFoodStatus(%q) = %q, %v", s, got, err)
		}
	}

	if _, err := ParseFoodStatus("Expired"); err != ErrInvalidFoodStatus {
		t.Errorf("ParseFoodStatus(unknown) error = %v; want ErrInvalidFoodStatus", err)
	}
}
