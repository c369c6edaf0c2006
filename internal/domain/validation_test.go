package domain

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func validProduct() Product {
	return Product{
		ID:            1,
		Name:          "Aurora ANC Headphones",
		Category:      CategoryHeadphones,
		Price:         249.99,
		OriginalPrice: 299.99,
		Stock:         4,
		Rating:        4.8,
		Images:        []string{"a.jpg"},
	}
}

func TestProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Product)
		want   map[string]string
	}{
		{"valid", func(p *Product) {}, nil},
		{"missing name", func(p *Product) { p.Name = "" }, map[string]string{"name": "Required"}},
		{"unknown category", func(p *Product) { p.Category = "toys" }, map[string]string{"category": "Unknown category"}},
		{"original below price", func(p *Product) { p.OriginalPrice = 199 }, map[string]string{"originalPrice": "failed on the 'gtefield' tag"}},
		{"rating above five", func(p *Product) { p.Rating = 5.1 }, map[string]string{"rating": "failed on the 'lte' tag"}},
		{"no images", func(p *Product) { p.Images = nil }, map[string]string{"images": "Required"}},
		{"blank image", func(p *Product) { p.Images = []string{""} }, map[string]string{"images[0]": "Required"}},
	}

	v := NewValidation()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)

			errs := v.Validate(p)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs.Fields())
		})
	}
}

func TestFormValidation(t *testing.T) {
	v := NewValidation()

	tests := []struct {
		name string
		form interface{}
		want map[string]string
	}{
		{
			name: "login ok",
			form: LoginForm{Email: "a@b.co", Password: "secret"},
		},
		{
			name: "login bad",
			form: LoginForm{Email: " ", Password: "12345"},
			want: map[string]string{"email": "Required", "password": "Min 6 characters"},
		},
		{
			name: "register mismatch",
			form: RegisterForm{Name: "Asha", Email: "asha@example.com", Password: "secret", Confirm: "other1"},
			want: map[string]string{"confirm": "Passwords don't match"},
		},
		{
			name: "shipping missing fields",
			form: ShippingForm{FirstName: "Asha", Email: "a@b", Address: "x", City: "y", State: "z", Zip: "1"},
			want: map[string]string{"lastName": "Required", "email": "Invalid email"},
		},
		{
			name: "payment ok with spaces",
			form: PaymentForm{CardName: "Asha", CardNumber: "4242 4242 4242 4242", Expiry: "01/30", CVV: "1234"},
		},
		{
			name: "payment bad",
			form: PaymentForm{CardName: "Asha", CardNumber: "4242 4242 4242 424x", Expiry: "00/30", CVV: "12345"},
			want: map[string]string{"cardNumber": "Invalid card number", "expiry": "Invalid expiry", "cvv": "Invalid CVV"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.Validate(tt.form)
			if tt.want == nil {
				assert.Empty(t, errs)
				return
			}
			assert.Equal(t, tt.want, errs.Fields())
		})
	}
}

func TestValidationErrorsError(t *testing.T) {
	errs := ValidationErrors{{Field: "email", Message: "Invalid email"}, {Field: "zip", Message: "Required"}}
	assert.Equal(t, "Field 'email': Invalid email; Field 'zip': Required", errs.Error())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("mice")
	assert.NoError(t, err)
	assert.Equal(t, CategoryMice, c)

	_, err = ParseCategory("Mice")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestStockStatus(t *testing.T) {
	for stock, want := range map[int]StockStatus{-1: OutOfStock, 0: OutOfStock, 1: LowStock, 5: LowStock, 6: InStock} {
		p := Product{Stock: stock}
		assert.Equal(t, want, p.StockStatus(), "stock %d", stock)
	}
}

func TestSpecsKeepOrder(t *testing.T) {
	var s Specs
	assert.NoError(t, s.UnmarshalJSON([]byte(`{"Driver":"40mm","Battery":"30h","ANC":"Yes"}`)))
	assert.Equal(t, Specs{{Key: "Driver", Value: "40mm"}, {Key: "Battery", Value: "30h"}, {Key: "ANC", Value: "Yes"}}, s)

	out, err := s.MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `{"Driver":"40mm","Battery":"30h","ANC":"Yes"}`, string(out))

	v, ok := s.Get("Battery")
	assert.True(t, ok)
	assert.Equal(t, "30h", v)
	_, ok = s.Get("Weight")
	assert.False(t, ok)
}

func TestSpecsJSON(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		want    Specs
		wantErr bool
	}{
		{"null", `null`, nil, false},
		{"empty", `{}`, Specs{}, false},
		{"non-ascii value", `{"Impedance":"38Ω","Angle":"57°"}`, Specs{{Key: "Impedance", Value: "38Ω"}, {Key: "Angle", Value: "57°"}}, false},
		{"duplicate key keeps first position", `{"A":"1","B":"2","A":"3"}`, Specs{{Key: "A", Value: "3"}, {Key: "B", Value: "2"}}, false},
		{"array", `["not","an","object"]`, nil, true},
		{"number value", `{"Battery":30}`, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var s Specs
			err := s.UnmarshalJSON([]byte(tc.in))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, s)
		})
	}
}

func TestSpecsMarshal(t *testing.T) {
	testCases := []struct {
		name  string
		specs Specs
		want  string
	}{
		{"nil", nil, `null`},
		{"empty", Specs{}, `{}`},
		{"order kept", Specs{{Key: "Weight", Value: "63g"}, {Key: "Sensor", Value: "26K DPI"}}, `{"Weight":"63g","Sensor":"26K DPI"}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.specs.MarshalJSON()
			assert.NoError(t, err)
			assert.Equal(t, tc.want, string(out))
		})
	}
}
