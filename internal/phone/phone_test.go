package phone

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{"plus7 grouped", `<span>+7 (912) 345-67-89</span>`, "+7 (912) 345-67-89"},
		{"plus7 no spaces", `tel:+7(912)3456789`, "+7 (912) 345-67-89"},
		{"plus7 spaced groups", `+7 912 345 67 89`, "+7 (912) 345-67-89"},
		{"eight parenthesized", `Звоните 8(912)345-67-89`, "+7 (912) 345-67-89"},
		{"eight spaced", `8 912 345-67-89`, "+7 (912) 345-67-89"},
		{"plus7 contiguous", `"phone":"+79123456789"`, "+7 (912) 345-67-89"},
		{"eight contiguous", `<a href="tel:89123456789">`, "+7 (912) 345-67-89"},
		{"plus7 preferred over eight", `8 800 555-35-35 or +7 (912) 345-67-89`, "+7 (912) 345-67-89"},
		{"first match only", `+7 (912) 345-67-89, +7 (999) 111-22-33`, "+7 (912) 345-67-89"},
		{"no digits", `<html><body>Нет телефона</body></html>`, ""},
		{"too short", `+7 (912) 345-67`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Find(tt.html))
		})
	}
}

func TestFind_AnyTenDigits(t *testing.T) {
	t.Parallel()

	for _, digits := range []string{"0000000000", "9123456789", "4951234567", "8005553535"} {
		want := fmt.Sprintf("+7 (%s) %s-%s-%s", digits[:3], digits[3:6], digits[6:8], digits[8:])
		for _, prefix := range []string{"+7", "8"} {
			html := "<div>" + prefix + digits + "</div>"
			assert.Equal(t, want, Find(html), html)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+7 (912) 345-67-89", Format("9123456789"))
	assert.Equal(t, "12345", Format("12345"))
}
